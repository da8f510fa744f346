package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifiedName(t *testing.T) {
	type testCase struct {
		name    string
		service string
		method  string
		expect  string
	}

	tests := []testCase{{
		name:    "plain",
		service: "weather",
		method:  "current",
		expect:  "weather.current",
	}, {
		name:    "nested service",
		service: "system/exec",
		method:  "execute",
		expect:  "system/exec.execute",
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qualified := QualifiedName(tc.service, tc.method)
			assert.Equal(t, tc.expect, qualified)
			service, method := SplitQualifiedName(qualified)
			assert.Equal(t, tc.service, service)
			assert.Equal(t, tc.method, method)
		})
	}
}

func TestSplitQualifiedName_NoSeparator(t *testing.T) {
	service, method := SplitQualifiedName("weather")
	assert.Equal(t, "weather", service)
	assert.Equal(t, "", method)
}
