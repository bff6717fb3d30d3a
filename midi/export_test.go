package midi

import "time"

type RenderJob = renderJob

func NewRenderJob(keys []int32, hold time.Duration) RenderJob {
	return renderJob{keys: keys, hold: hold}
}

func (j RenderJob) Hold() time.Duration { return j.hold }

type RenderQueue struct{ q *renderQueue }

func NewRenderQueue(size int, render func(RenderJob) *Clip, out func(*Clip)) RenderQueue {
	return RenderQueue{newRenderQueue(size, render, out)}
}

func (r RenderQueue) Push(j RenderJob) bool { return r.q.push(j) }
func (r RenderQueue) Close()                { r.q.close() }
