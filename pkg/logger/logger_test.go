package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsReturnUsableLoggers(t *testing.T) {
	for name, l := range map[string]*Logger{
		"production":  New(),
		"development": NewDevelopment(),
		"nop":         NewNop(),
	} {
		assert.NotNilf(t, l, "%s logger", name)
		assert.NotPanicsf(t, func() { l.Infow("startup", "component", name) }, "%s logger", name)
	}
}
