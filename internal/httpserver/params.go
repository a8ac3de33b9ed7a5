package httpserver

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/coderr/internal/service"
	authmw "github.com/Skotchmaster/coderr/pkg/middleware/auth"
)

var errNotPositive = errors.New("must be a positive integer")

func parseID(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, errNotPositive
	}
	return uint(v), nil
}

// pathID reads a positive integer path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	return parseID(c.Param(name))
}

func actorFrom(c echo.Context) service.Actor {
	id, _ := authmw.IdentityFrom(c)
	return service.Actor{UserID: id.UserID, Role: id.Role, IsAdmin: id.IsAdmin}
}

// queryParser collects per-parameter errors so a request reports all of them at once.
type queryParser struct {
	c    echo.Context
	verr service.ValidationError
}

func (p *queryParser) uintPtr(name string) *uint {
	raw := p.c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := parseID(raw)
	if err != nil {
		p.verr.Add(name, "must be a positive integer")
		return nil
	}
	return &v
}

func (p *queryParser) intPtr(name string) *int {
	raw := p.c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.verr.Add(name, "must be an integer")
		return nil
	}
	return &v
}

func (p *queryParser) decimalPtr(name string) *decimal.Decimal {
	raw := p.c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		p.verr.Add(name, "must be a number")
		return nil
	}
	return &v
}

func (p *queryParser) err() error {
	if p.verr.Empty() {
		return nil
	}
	return &p.verr
}
