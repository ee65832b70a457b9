package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationLoad matches every *ConfigurationLoadError.
	ErrConfigurationLoad = errors.New("configuration load failed")
	// ErrContainerInit matches every *ContainerInitError.
	ErrContainerInit = errors.New("container initialisation failed")
	// ErrModuleBuild matches every *ModuleBuildError.
	ErrModuleBuild = errors.New("module build failed")
	// ErrDispatch matches every *DispatchError.
	ErrDispatch = errors.New("request dispatch failed")
)

// ConfigurationLoadError reports a configuration artifact that is missing or
// could not be evaluated.
type ConfigurationLoadError struct {
	Environment string
	Path        string
	Err         error
}

func (e *ConfigurationLoadError) Error() string {
	return fmt.Sprintf("%s: environment %q (%s): %v", ErrConfigurationLoad, e.Environment, e.Path, e.Err)
}

func (e *ConfigurationLoadError) Unwrap() []error { return []error{ErrConfigurationLoad, e.Err} }

// ContainerInitError reports a container factory that failed.
type ContainerInitError struct {
	Err error
}

func (e *ContainerInitError) Error() string {
	return fmt.Sprintf("%s: %v", ErrContainerInit, e.Err)
}

func (e *ContainerInitError) Unwrap() []error { return []error{ErrContainerInit, e.Err} }

// Stage names the module step that failed.
type Stage string

const (
	StageBuild    Stage = "build"
	StageCommands Stage = "commands"
)

// ModuleBuildError reports the module whose build or command registration
// failed. Modules after it were not built.
type ModuleBuildError struct {
	Module string
	Stage  Stage
	Err    error
}

func (e *ModuleBuildError) Error() string {
	return fmt.Sprintf("%s: module %q (%s): %v", ErrModuleBuild, e.Module, e.Stage, e.Err)
}

func (e *ModuleBuildError) Unwrap() []error { return []error{ErrModuleBuild, e.Err} }

// DispatchError wraps any failure raised while a request was processed.
type DispatchError struct {
	RequestID string
	Err       error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s: request %s: %v", ErrDispatch, e.RequestID, e.Err)
}

func (e *DispatchError) Unwrap() []error { return []error{ErrDispatch, e.Err} }

// capture runs fn and turns a panic into an error.
func capture(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", rerr)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
