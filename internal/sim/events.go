package sim

type EventType int

const (
	EventPhaseChanged EventType = iota
	EventSignalChanged
	EventDropStarted
	EventDropFinished
	EventFireExtinguished
	EventBucketFilled
	EventReset
)

func (t EventType) String() string {
	switch t {
	case EventPhaseChanged:
		return "phase"
	case EventSignalChanged:
		return "signal"
	case EventDropStarted:
		return "drop_started"
	case EventDropFinished:
		return "drop_finished"
	case EventFireExtinguished:
		return "fire_extinguished"
	case EventBucketFilled:
		return "bucket_filled"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

type Event struct {
	Type   EventType
	At     float64 // simulation time (ms)
	Pos    Vec3
	Phase  Phase
	Signal Signal
	Data   int // generic payload (fire index, hits on drop end)
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the tick goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventPhaseChanged; t <= EventReset; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
