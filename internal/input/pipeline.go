package input

import "golang.org/x/mobile/event/key"

// Listener receives key events the router did not consume.
type Listener interface {
	HandleKey(e key.Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e key.Event)

func (f ListenerFunc) HandleKey(e key.Event) { f(e) }

// Pipeline fans key events out to listeners in registration order.
type Pipeline struct {
	listeners []Listener
}

// Subscribe adds l to the pipeline.
func (p *Pipeline) Subscribe(l Listener) {
	p.listeners = append(p.listeners, l)
}

// Dispatch delivers e to every listener.
func (p *Pipeline) Dispatch(e key.Event) {
	for _, l := range p.listeners {
		l.HandleKey(e)
	}
}
