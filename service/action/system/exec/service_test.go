package exec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_Execute(t *testing.T) {
	service := New()
	defer service.Close(context.Background())

	output := &Output{}
	err := service.Execute(context.Background(), &Input{
		Commands: []string{"echo hello", "echo world"},
	}, output)
	assert.Nil(t, err)
	assert.Equal(t, 0, output.Status)
	assert.Contains(t, output.Stdout, "hello")
	assert.Contains(t, output.Stdout, "world")
	assert.Equal(t, 2, len(output.Commands))
}

func TestService_Execute_AbortOnError(t *testing.T) {
	service := New()
	defer service.Close(context.Background())

	output := &Output{}
	err := service.Execute(context.Background(), &Input{
		Commands: []string{"false", "echo unreachable"},
	}, output)
	assert.Nil(t, err)
	assert.NotEqual(t, 0, output.Status)
	assert.Equal(t, 1, len(output.Commands))
}

func TestService_Method(t *testing.T) {
	service := New()
	executable, err := service.Method("execute")
	assert.Nil(t, err)
	assert.NotNil(t, executable)
	_, err = service.Method("unknown")
	assert.NotNil(t, err)
}
