package exec

import (
	"github.com/viant/toolgate/service/action/system"
)

// Input represents a command execution request
type Input struct {
	Host         *system.Host      `json:"host,omitempty" description:"host to execute command on" internal:"true"`
	Workdir      string            `json:"workdir,omitempty" description:"directory where commands start"`
	Env          map[string]string `json:"env,omitempty" description:"environment variables to be set before command runs"`
	Commands     []string          `json:"commands,omitempty" description:"commands to execute on the target system"`
	TimeoutMs    int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty" description:"max wait time before timing out command"`
	AbortOnError *bool             `json:"abortOnError,omitempty" description:"stop after the first command with a non-zero status"`
}

func (i *Input) Init() {
	if i.Host == nil {
		i.Host = &system.Host{}
	}
	if i.Host.URL == "" {
		i.Host.URL = "bash://localhost/"
	}
}
