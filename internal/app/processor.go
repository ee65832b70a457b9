package app

import (
	"context"
	"net/http"

	"github.com/specialistvlad/bootkernel/internal/container"
	"github.com/specialistvlad/bootkernel/internal/ctxlog"
	"github.com/specialistvlad/bootkernel/internal/kernel"
	"github.com/specialistvlad/bootkernel/modules/diagnostics"
	"github.com/specialistvlad/bootkernel/modules/greeter"
)

// processor answers requests with the greeter service and renders failures
// with the diagnostics renderer.
type processor struct{}

// ProcessRequest falls back to the kernel placeholder when no greeter is
// registered.
func (p *processor) ProcessRequest(ctx context.Context, k *kernel.Kernel, req *kernel.Request) (*kernel.Response, error) {
	svc, err := container.Resolve[*greeter.Service](k.Container(), greeter.ServiceName)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("Greeter not available, using placeholder.", "error", err)
		return kernel.Placeholder{}.ProcessRequest(ctx, k, req)
	}
	return kernel.NewResponse(http.StatusOK, svc.Greet()), nil
}

// ProcessException uses the registered renderer. A failed boot leaves no
// container behind, so a renderer following the kernel's debug flag is used
// instead.
func (p *processor) ProcessException(ctx context.Context, k *kernel.Kernel, err error, req *kernel.Request) *kernel.Response {
	renderer, rerr := container.Resolve[*diagnostics.Renderer](k.Container(), diagnostics.RendererName)
	if rerr != nil {
		renderer = diagnostics.NewRenderer(k.Debug())
	}
	status, body := renderer.Render(err)
	return kernel.NewResponse(status, body)
}
