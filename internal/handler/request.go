package handler

// NoParams is the request of routes that read nothing from the request.
type NoParams struct{}

func (*NoParams) Validate() error { return nil }

// IDParams carries the raw :id path segment. It is kept as a string so a
// non-numeric id reaches the service and is reported as not found.
type IDParams struct {
	ID string `param:"id"`
}

func (*IDParams) Validate() error { return nil }
