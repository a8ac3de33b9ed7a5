package httpserver

import "github.com/Skotchmaster/coderr/internal/service"

// requestValidator plugs the service struct validation into echo's c.Validate.
type requestValidator struct{}

func (requestValidator) Validate(i any) error {
	return service.ValidateStruct(i)
}
