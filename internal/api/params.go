package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParamError: параметр запроса не приводится к нужному типу. Отвечаем 400.
type ParamError struct {
	Param string
	Value string
	Want  string
}

func (e *ParamError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("Parameter '%s' is required (%s)", e.Param, e.Want)
	}
	return fmt.Sprintf("Parameter '%s' expected %s, got %q", e.Param, e.Want, e.Value)
}

// pathID читает :name как целое число.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ParamError{Param: name, Value: raw, Want: "integer"}
	}
	return id, nil
}

// queryBool читает обязательный булев query-параметр: true/false, 1/0, t/f.
func queryBool(c *gin.Context, name string) (bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &ParamError{Param: name, Value: raw, Want: "boolean"}
	}
	return b, nil
}

// queryBools: несколько булевых параметров разом; первая же ошибка прерывает разбор.
func queryBools(c *gin.Context, names ...string) ([]bool, error) {
	out := make([]bool, 0, len(names))
	for _, n := range names {
		b, err := queryBool(c, n)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
