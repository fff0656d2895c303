package apiobject

import (
	"context"
	"strconv"
	"strings"

	"github.com/simplekube/objkit/pkg/apiclient"

	"github.com/pkg/errors"
)

type ExecOption interface {
	// ApplyTo sets the provided ExecOption instance
	ApplyTo(ExecOption) error
}

// ExecOptions defines runtime options for an Execute invocation. The
// boolean channel flags are tri-state: a nil flag is not sent at all.
type ExecOptions struct {
	Stdin  *bool
	Stdout *bool
	Stderr *bool
	TTY    *bool

	// Container selects a container for multi container pods
	Container string
}

// compile time check to assert if the structure
// ExecOptions implements the interface ExecOption
var _ ExecOption = (*ExecOptions)(nil)

// ApplyTo applies properties from the method receiver
// to the provided target instance
func (o *ExecOptions) ApplyTo(target ExecOption) error {
	if o == nil {
		return errors.New("nil receiver options")
	}
	if target == nil {
		return errors.New("nil target options")
	}
	targetObj, ok := target.(*ExecOptions)
	if !ok {
		return errors.Errorf("invalid options type: want 'ExecOptions' got %T", target)
	}
	if o.Stdin != nil {
		targetObj.Stdin = o.Stdin
	}
	if o.Stdout != nil {
		targetObj.Stdout = o.Stdout
	}
	if o.Stderr != nil {
		targetObj.Stderr = o.Stderr
	}
	if o.TTY != nil {
		targetObj.TTY = o.TTY
	}
	if o.Container != "" {
		targetObj.Container = o.Container
	}
	return nil
}

// Execute runs a command inside the pod through the exec sub-resource
// & returns the raw response body. This call bypasses the patch
// machinery entirely; it is a query parameterised GET against the
// singular target.
//
// Note: Boolean flags are serialised as the literal strings
// "true"/"false" & parameters keep the supplied order on the wire
func (o *Object) Execute(ctx context.Context, command []string, options ...ExecOption) (string, error) {
	if o.Kind() != "Pod" {
		return "", errors.Errorf("kind %q does not support exec", o.Kind())
	}
	if len(command) == 0 {
		return "", errors.New("no command provided")
	}
	var opts ExecOptions
	for _, option := range options {
		if err := option.ApplyTo(&opts); err != nil {
			return "", err
		}
	}

	params := []apiclient.Param{
		{Key: "command", Value: strings.Join(command, " ")},
	}
	for _, flag := range []struct {
		key   string
		value *bool
	}{
		{key: "stdin", value: opts.Stdin},
		{key: "stdout", value: opts.Stdout},
		{key: "stderr", value: opts.Stderr},
		{key: "tty", value: opts.TTY},
	} {
		if flag.value != nil {
			params = append(params, apiclient.Param{Key: flag.key, Value: strconv.FormatBool(*flag.value)})
		}
	}
	if opts.Container != "" {
		params = append(params, apiclient.Param{Key: "container", Value: opts.Container})
	}

	requestOptions, err := o.requestOptions(targetOptions{subresource: "exec", params: params})
	if err != nil {
		return "", err
	}
	resp, err := o.api.Get(ctx, requestOptions)
	if err != nil {
		return "", errors.Wrapf(err, "failed to exec into %s %q", o.Kind(), o.Name())
	}
	if err := resp.Err(); err != nil {
		return "", errors.Wrapf(err, "failed to exec into %s %q", o.Kind(), o.Name())
	}
	return string(resp.Body), nil
}
