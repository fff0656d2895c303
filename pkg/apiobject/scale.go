package apiobject

import (
	"context"
	"time"

	"github.com/simplekube/objkit/pkg/util"

	"github.com/pkg/errors"
)

const (
	// DefaultScaleInterval is the wait between convergence polls
	DefaultScaleInterval = 1 * time.Second

	// DefaultScaleTimeout bounds the convergence poll. The reference
	// behaviour of kubectl style scaling is to wait forever; a bound
	// is the default here & callers that want the legacy behaviour
	// can set the timeout to zero.
	DefaultScaleTimeout = 5 * time.Minute
)

// This file makes use of functional options pattern
// credit: https://github.com/uber-go/guide/blob/master/style.md

type ScaleOption interface {
	// ApplyTo sets the provided ScaleOption instance
	ApplyTo(ScaleOption) error
}

// ScaleOptions defines runtime options for a Scale invocation
type ScaleOptions struct {
	// Interval between convergence polls
	Interval *time.Duration

	// Timeout bounds the convergence poll; zero waits forever
	Timeout *time.Duration

	// Sleep when set replaces time.Sleep between polls
	Sleep func(d time.Duration)
}

// compile time check to assert if the structure
// ScaleOptions implements the interface ScaleOption
var _ ScaleOption = (*ScaleOptions)(nil)

// ApplyTo applies properties from the method receiver
// to the provided target instance
func (o *ScaleOptions) ApplyTo(target ScaleOption) error {
	if o == nil {
		return errors.New("nil receiver options")
	}
	if target == nil {
		return errors.New("nil target options")
	}
	targetObj, ok := target.(*ScaleOptions)
	if !ok {
		return errors.Errorf("invalid options type: want 'ScaleOptions' got %T", target)
	}
	if o.Interval != nil {
		targetObj.Interval = o.Interval
	}
	if o.Timeout != nil {
		targetObj.Timeout = o.Timeout
	}
	if o.Sleep != nil {
		targetObj.Sleep = o.Sleep
	}
	return nil
}

// FromScaleOptions creates a new options instance assembled from the
// provided list of options
func FromScaleOptions(options ...ScaleOption) (*ScaleOptions, error) {
	var target ScaleOptions
	for _, o := range options {
		err := o.ApplyTo(&target)
		if err != nil {
			return nil, err
		}
	}
	return &target, nil
}

// Scale drives the desired-count scalar of the remote resource to the
// provided value & polls till the server reports convergence. A nil
// desired re-asserts the current value of the scalar i.e. the update
// is a no-op but the confirm loop still runs. The resource must
// already exist remotely; a NotFoundError is returned otherwise.
//
// Note: The convergence check compares the freshly reloaded scalar
// against the target on each poll
func (o *Object) Scale(ctx context.Context, desired *int64, options ...ScaleOption) error {
	if !o.descriptor.IsScalable() {
		return errors.Errorf("kind %q is not scalable", o.Kind())
	}
	opts, err := FromScaleOptions(options...)
	if err != nil {
		return err
	}
	interval := DefaultScaleInterval
	if opts.Interval != nil {
		interval = *opts.Interval
	}
	timeout := DefaultScaleTimeout
	if opts.Timeout != nil {
		timeout = *opts.Timeout
	}

	target := int64(0)
	if desired != nil {
		target = *desired
	} else {
		target, err = o.DesiredCount()
		if err != nil {
			return err
		}
	}

	if _, err := o.Exists(ctx, true); err != nil {
		return err
	}
	if err := o.SetDesiredCount(target); err != nil {
		return err
	}
	if err := o.Update(ctx); err != nil {
		return err
	}

	return util.Retry(ctx, util.RetryOptions{
		Immediate: true,
		Interval:  interval,
		Timeout:   timeout,
		Sleep:     opts.Sleep,
	}, func() (bool, error) {
		if err := o.Reload(ctx); err != nil {
			return true, err
		}
		current, err := o.DesiredCount()
		if err != nil {
			return true, err
		}
		return current == target, nil
	})
}
