package axon

// fakeRequest is an in-memory Request
type fakeRequest struct {
	route   map[string]string
	query   map[string][]string
	headers map[string]string
	body    any
}

func (r *fakeRequest) RouteParam(name string) (string, bool) {
	v, ok := r.route[name]
	return v, ok
}

func (r *fakeRequest) QueryValues(name string) []string {
	return r.query[name]
}

func (r *fakeRequest) Header(name string) (string, bool) {
	v, ok := r.headers[name]
	return v, ok
}

func (r *fakeRequest) Body() any {
	return r.body
}

// recordingSender remembers every sent value
type recordingSender struct {
	sent []any
}

func (s *recordingSender) Send(value any) error {
	s.sent = append(s.sent, value)
	return nil
}
