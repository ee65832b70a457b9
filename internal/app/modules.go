package app

import (
	"github.com/specialistvlad/bootkernel/modules/diagnostics"
	"github.com/specialistvlad/bootkernel/modules/envvars"
	"github.com/specialistvlad/bootkernel/modules/greeter"
	"github.com/specialistvlad/bootkernel/modules/print"
)

// RegisterModules is the definitive list of modules compiled into the
// binary, in build order. diagnostics comes first so its renderer exists
// even when a later module fails.
func RegisterModules(environment string) []any {
	modules := []any{
		&diagnostics.Module{},
		&envvars.Module{},
		&greeter.Module{},
	}
	if environment != "prod" {
		modules = append(modules, &print.Module{})
	}
	return modules
}
