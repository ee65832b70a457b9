package kernel

import (
	"context"
	"sync"
)

type requestsKey struct{}

// RequestsFromContext returns the stack of the master request ctx belongs
// to, or nil outside Serve.
func RequestsFromContext(ctx context.Context) *RequestStack {
	s, _ := ctx.Value(requestsKey{}).(*RequestStack)
	return s
}

func withRequests(ctx context.Context, s *RequestStack) context.Context {
	return context.WithValue(ctx, requestsKey{}, s)
}

// RequestStack tracks one master request and the sub-requests it issued,
// master first. Serve starts a new stack for every master request.
type RequestStack struct {
	mu       sync.Mutex
	requests []*Request
}

// NewRequestStack creates an empty stack.
func NewRequestStack() *RequestStack {
	return &RequestStack{}
}

// Push adds req on top.
func (s *RequestStack) Push(req *Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
}

// Pop removes and returns the top request, or nil when empty.
func (s *RequestStack) Pop() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	top := s.requests[len(s.requests)-1]
	s.requests[len(s.requests)-1] = nil
	s.requests = s.requests[:len(s.requests)-1]
	return top
}

// Remove takes req off the stack wherever it is and reports whether it was
// found.
func (s *RequestStack) Remove(req *Request) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i] != req {
			continue
		}
		copy(s.requests[i:], s.requests[i+1:])
		s.requests[len(s.requests)-1] = nil
		s.requests = s.requests[:len(s.requests)-1]
		return true
	}
	return false
}

// Current returns the top request without removing it.
func (s *RequestStack) Current() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// Master returns the bottom request.
func (s *RequestStack) Master() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[0]
}

// Len returns the number of requests on the stack.
func (s *RequestStack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
