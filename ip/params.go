package ip

import (
	"fmt"
	"strconv"
	"strings"
)

// Parameter is a single IP component parameter.
type Parameter struct {
	Name  string
	Value interface{}
}

// ParameterMap maps IP component parameter names to values (int, float64 or string).
// Iteration follows insertion order; overwriting a parameter keeps its position.
type ParameterMap struct {
	names  []string
	values map[string]interface{}
}

// NewParameterMap creates an empty ParameterMap.
func NewParameterMap() *ParameterMap {
	return &ParameterMap{values: map[string]interface{}{}}
}

// Set adds or overwrites a parameter.
func (m *ParameterMap) Set(name string, value interface{}) {
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = value
}

// SetAll sets every parameter of `params` in order.
func (m *ParameterMap) SetAll(params []Parameter) {
	for _, p := range params {
		m.Set(p.Name, p.Value)
	}
}

// Get returns the value of a parameter and whether it is set.
func (m *ParameterMap) Get(name string) (interface{}, bool) {
	value, ok := m.values[name]
	return value, ok
}

// Has reports whether a parameter is set.
func (m *ParameterMap) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Len returns the number of parameters.
func (m *ParameterMap) Len() int {
	return len(m.names)
}

// Names returns the parameter names in insertion order.
func (m *ParameterMap) Names() []string {
	return append([]string{}, m.names...)
}

// Entries returns the parameters in insertion order.
func (m *ParameterMap) Entries() []Parameter {
	result := make([]Parameter, 0, len(m.names))
	for _, name := range m.names {
		result = append(result, Parameter{name, m.values[name]})
	}
	return result
}

// FormatValue renders a parameter value for the ip-deploy command line.
// Floating point values always carry a decimal point ("200.0"), as the IP GUIs expect.
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprint(v)
	}
}

// roundTo rounds the exact binary value of x to the given decimal places, ties to even.
func roundTo(x float64, places int) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	return rounded
}

func isEnabled(value string) bool {
	return value == "True" || value == "1"
}
