package apiobject

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/simplekube/objkit/pkg/pointer"

	"github.com/stretchr/testify/assert"
)

func TestScaleWaitsForConvergence(t *testing.T) {
	t.Parallel()

	api := &fakeClient{replies: []fakeReply{
		// existence check
		reply(200, `{"metadata": {"name": "d1"}, "spec": {"replicas": 1}}`),
		// patch response
		reply(200, `{"metadata": {"name": "d1"}, "spec": {"replicas": 3}}`),
		// first reload has not converged yet
		reply(200, `{"metadata": {"name": "d1"}, "spec": {"replicas": 1}}`),
		// second reload converged
		reply(200, `{"metadata": {"name": "d1"}, "spec": {"replicas": 3}}`),
	}}
	object, err := NewDeployment(api, deploymentDoc("d1", int64(1)))
	assert.NoError(t, err)

	var sleeps int
	err = object.Scale(context.Background(), pointer.Int64(3), &ScaleOptions{
		Sleep: func(d time.Duration) { sleeps++ },
	})
	assert.NoError(t, err)

	// one existence check plus exactly two reloads
	assert.Len(t, api.callsFor(http.MethodGet), 3)
	assert.Len(t, api.callsFor(http.MethodPatch), 1)
	assert.Equal(t, 1, sleeps)

	count, err := object.DesiredCount()
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestScaleRequiresExistence(t *testing.T) {
	t.Parallel()

	api := &fakeClient{replies: []fakeReply{reply(404, `{}`)}}
	object, err := NewDeployment(api, deploymentDoc("d1", int64(1)))
	assert.NoError(t, err)

	err = object.Scale(context.Background(), pointer.Int64(3))
	assert.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, api.callsFor(http.MethodPatch))
}

// A nil desired value re-asserts the current scalar; the confirm loop
// still runs
func TestScaleWithNilDesired(t *testing.T) {
	t.Parallel()

	api := &fakeClient{replies: []fakeReply{
		reply(200, `{"metadata": {"name": "j1"}, "spec": {"parallelism": 2, "completions": 5}}`),
		reply(200, `{"metadata": {"name": "j1"}, "spec": {"parallelism": 2, "completions": 5}}`),
		reply(200, `{"metadata": {"name": "j1"}, "spec": {"parallelism": 2, "completions": 5}}`),
	}}
	object, err := NewJob(api, map[string]interface{}{
		"metadata": map[string]interface{}{"name": "j1"},
		"spec": map[string]interface{}{
			"parallelism": int64(2),
			"completions": int64(5),
		},
	})
	assert.NoError(t, err)

	var sleeps int
	err = object.Scale(context.Background(), nil, &ScaleOptions{
		Sleep: func(d time.Duration) { sleeps++ },
	})
	assert.NoError(t, err)
	assert.Len(t, api.callsFor(http.MethodGet), 2)
	assert.Equal(t, 0, sleeps)

	// the historical completion count is not touched
	completions := object.Document()["spec"].(map[string]interface{})["completions"]
	assert.Equal(t, int64(5), completions)
}

func TestScaleIsBoundedByTimeout(t *testing.T) {
	t.Parallel()

	stuck := reply(200, `{"metadata": {"name": "d1"}, "spec": {"replicas": 1}}`)
	api := &fakeClient{replies: []fakeReply{stuck, stuck, stuck}}
	object, err := NewDeployment(api, deploymentDoc("d1", int64(1)))
	assert.NoError(t, err)

	err = object.Scale(context.Background(), pointer.Int64(3), &ScaleOptions{
		Timeout: pointer.Duration(time.Nanosecond),
		Sleep:   func(d time.Duration) {},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestScaleHonoursContextCancellation(t *testing.T) {
	t.Parallel()

	stuck := reply(200, `{"metadata": {"name": "d1"}, "spec": {"replicas": 1}}`)
	api := &fakeClient{replies: []fakeReply{stuck, stuck, stuck}}
	object, err := NewDeployment(api, deploymentDoc("d1", int64(1)))
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	err = object.Scale(ctx, pointer.Int64(3), &ScaleOptions{
		Timeout: pointer.Duration(0), // wait forever
		Sleep:   func(d time.Duration) { cancel() },
	})
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScaleRejectsNonScalableKinds(t *testing.T) {
	t.Parallel()

	api := &fakeClient{}
	object, err := NewPod(api, podDoc("p1"))
	assert.NoError(t, err)

	err = object.Scale(context.Background(), pointer.Int64(3))
	assert.Error(t, err)
	assert.Empty(t, api.calls)
}
