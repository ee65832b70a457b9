package kernel

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/specialistvlad/bootkernel/internal/ctxlog"
)

// RequestType distinguishes the request that entered the process from
// requests issued while serving it.
type RequestType int

const (
	MasterRequest RequestType = iota + 1
	SubRequest
)

func (t RequestType) String() string {
	switch t {
	case MasterRequest:
		return "master"
	case SubRequest:
		return "sub"
	default:
		return fmt.Sprintf("request_type(%d)", int(t))
	}
}

// Request is one unit of work handed to the kernel.
type Request struct {
	ID     string
	Type   RequestType
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Response is what the kernel hands back for a Request.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// NewResponse builds a plain-text response.
func NewResponse(status int, body string) *Response {
	return &Response{
		Status: status,
		Header: http.Header{"Content-Type": []string{"text/plain; charset=utf-8"}},
		Body:   []byte(body),
	}
}

// RequestProcessor turns a request into a response once the kernel is booted.
type RequestProcessor interface {
	ProcessRequest(ctx context.Context, k *Kernel, req *Request) (*Response, error)
}

// ExceptionProcessor renders the response for a request that failed.
type ExceptionProcessor interface {
	ProcessException(ctx context.Context, k *Kernel, err error, req *Request) *Response
}

// RequestProcessorFunc adapts a function to RequestProcessor.
type RequestProcessorFunc func(ctx context.Context, k *Kernel, req *Request) (*Response, error)

// ProcessRequest calls f.
func (f RequestProcessorFunc) ProcessRequest(ctx context.Context, k *Kernel, req *Request) (*Response, error) {
	return f(ctx, k, req)
}

// ExceptionProcessorFunc adapts a function to ExceptionProcessor.
type ExceptionProcessorFunc func(ctx context.Context, k *Kernel, err error, req *Request) *Response

// ProcessException calls f.
func (f ExceptionProcessorFunc) ProcessException(ctx context.Context, k *Kernel, err error, req *Request) *Response {
	return f(ctx, k, err, req)
}

// Placeholder is the default request and exception processor.
type Placeholder struct{}

// ProcessRequest answers every request with 200.
func (Placeholder) ProcessRequest(context.Context, *Kernel, *Request) (*Response, error) {
	return NewResponse(http.StatusOK, "Hello world!"), nil
}

// ProcessException answers every failure with 500.
func (Placeholder) ProcessException(context.Context, *Kernel, error, *Request) *Response {
	return NewResponse(http.StatusInternalServerError, "Oh no!")
}

// Serve processes req and always returns a response. Any error or panic
// raised while processing, including a failed lazy boot, is handed to
// ProcessException as a *DispatchError.
func (k *Kernel) Serve(ctx context.Context, req *Request) *Response {
	if req == nil {
		req = &Request{}
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Type == 0 {
		req.Type = MasterRequest
	}

	ctx = ctxlog.WithLogger(ctx, k.logger.With("request_id", req.ID, "request_type", req.Type.String()))
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Serving request.", "method", req.Method, "path", req.Path)

	stack := RequestsFromContext(ctx)
	if stack == nil || req.Type == MasterRequest {
		stack = NewRequestStack()
		ctx = withRequests(ctx, stack)
	}
	stack.Push(req)
	defer stack.Remove(req)

	resp, err := k.dispatch(ctx, req)
	if err == nil && resp == nil {
		err = errors.New("request processor returned no response")
	}
	if err != nil {
		logger.Error("Request failed.", "error", err)
		return k.ProcessException(ctx, &DispatchError{RequestID: req.ID, Err: err}, req)
	}

	logger.Debug("Request served.", "status", resp.Status)
	return resp
}

func (k *Kernel) dispatch(ctx context.Context, req *Request) (resp *Response, err error) {
	err = capture(func() error {
		var perr error
		resp, perr = k.ProcessRequest(ctx, req)
		return perr
	})
	return resp, err
}

// ProcessRequest boots the kernel if needed and runs the request processor.
func (k *Kernel) ProcessRequest(ctx context.Context, req *Request) (*Response, error) {
	if !k.IsBooted() {
		if err := k.Boot(ctx); err != nil {
			return nil, err
		}
	}
	return k.requests.ProcessRequest(ctx, k, req)
}

// ProcessException runs the exception processor. A processor that panics or
// returns nothing falls back to the placeholder response.
func (k *Kernel) ProcessException(ctx context.Context, err error, req *Request) (resp *Response) {
	perr := capture(func() error {
		resp = k.exceptions.ProcessException(ctx, k, err, req)
		return nil
	})
	if perr != nil || resp == nil {
		if perr != nil {
			ctxlog.FromContext(ctx).Error("Exception processor failed.", "error", perr)
		}
		return Placeholder{}.ProcessException(ctx, k, err, req)
	}
	return resp
}
