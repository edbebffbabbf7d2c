package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"beerservice/internal/domain"
)

// Errors maps a JSON field name to a human readable message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Prices are validated as numbers.
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			x, _ := d.Float64()
			return x
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("beerstyle", func(fl validator.FieldLevel) bool {
		return domain.BeerStyle(fl.Field().String()).Valid()
	})
	return v
}

// Struct validates s against its `validate` tags. It returns nil when s is valid.
func Struct(s any) Errors {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return Errors{"_": err.Error()}
	}
	out := Errors{}
	for _, fe := range ves {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe.Tag(), fe.Param())
		}
	}
	return out
}

// BeerPatch checks only the fields a PATCH body actually carries.
func BeerPatch(d *domain.BeerDTO) Errors {
	out := Errors{}
	if strings.TrimSpace(d.BeerName) != "" {
		field(out, "beerName", d.BeerName, "max=50")
	}
	if strings.TrimSpace(d.UPC) != "" {
		field(out, "upc", d.UPC, "max=255")
	}
	if d.BeerStyle != "" && !d.BeerStyle.Valid() {
		out["beerStyle"] = message("beerstyle", "")
	}
	if d.Price != nil && d.Price.IsNegative() {
		out["price"] = message("gte", "0")
	}
	if d.QuantityOnHand != nil {
		field(out, "quantityOnHand", *d.QuantityOnHand, "min=0")
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CustomerPatch is BeerPatch for customers.
func CustomerPatch(d *domain.CustomerDTO) Errors {
	out := Errors{}
	if strings.TrimSpace(d.Name) != "" {
		field(out, "name", d.Name, "max=255")
	}
	if strings.TrimSpace(d.Email) != "" {
		field(out, "email", strings.TrimSpace(d.Email), "email,max=255")
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func field(out Errors, name string, val any, tag string) {
	err := v.Var(val, tag)
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		out[name] = message(ves[0].Tag(), ves[0].Param())
	}
}

func message(tag, param string) string {
	switch tag {
	case "required", "notblank":
		return "must not be blank"
	case "max":
		return fmt.Sprintf("size must be at most %s", param)
	case "min", "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)
	case "email":
		return "must be a well-formed email address"
	case "uuid":
		return "must be a UUID"
	case "beerstyle":
		styles := make([]string, len(domain.BeerStyles))
		for i, s := range domain.BeerStyles {
			styles[i] = string(s)
		}
		return "must be one of " + strings.Join(styles, ", ")
	}
	return "is invalid"
}

// ID parses a resource identifier from a path parameter.
func ID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	return id, err == nil
}
