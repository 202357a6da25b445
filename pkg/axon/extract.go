package axon

// Extractor pulls a raw value out of a request. The boolean is false when the
// value is absent; extractors never panic and never report errors.
type Extractor func(req Request) (any, bool)

// FromRoute extracts the path parameter called name
func FromRoute(name string) Extractor {
	return func(req Request) (any, bool) {
		v, ok := req.RouteParam(name)
		if !ok {
			return nil, false
		}
		return v, true
	}
}

// FromQuery extracts the query parameter called name. Keys sent more than
// once are treated as absent.
func FromQuery(name string) Extractor {
	return func(req Request) (any, bool) {
		vals := req.QueryValues(name)
		if len(vals) != 1 {
			return nil, false
		}
		return vals[0], true
	}
}

// FromHeader extracts the header called name
func FromHeader(name string) Extractor {
	return func(req Request) (any, bool) {
		v, ok := req.Header(name)
		if !ok {
			return nil, false
		}
		return v, true
	}
}

// FromBody extracts the body field called name, or the whole body when name
// is empty. A missing or non-object body behaves as an empty record.
func FromBody(name string) Extractor {
	return func(req Request) (any, bool) {
		body := req.Body()
		if name == "" {
			if body == nil {
				return map[string]any{}, true
			}
			return body, true
		}
		fields, ok := body.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := fields[name]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

// ExtractorFor selects the extractor for a source kind
func ExtractorFor(source SourceKind, name string) Extractor {
	switch source {
	case SourceRoute:
		return FromRoute(name)
	case SourceQuery:
		return FromQuery(name)
	case SourceHeader:
		return FromHeader(name)
	case SourceBody:
		return FromBody(name)
	}
	return func(Request) (any, bool) { return nil, false }
}
