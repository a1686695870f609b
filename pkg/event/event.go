// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-fireworks/pkg/entity"
	"github.com/opd-ai/go-fireworks/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation lifecycle event types
const (
	SimulationStarted    Type = "simulation_started"
	SimulationReset      Type = "simulation_reset"
	SimulationStopped    Type = "simulation_stopped"
	FireworkLaunched     Type = "firework_launched"
	FireworkExploded     Type = "firework_exploded"
	FireworkExtinguished Type = "firework_extinguished"
	SpawnDropped         Type = "spawn_dropped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registeredHandler struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Handlers run synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

// Specific event implementations

// FireworkEvent describes a firework lifecycle transition
type FireworkEvent struct {
	BaseEvent
	FireworkID entity.ID
	Hue        float64
	Position   physics.Vector2D
	Frame      uint64
}

// NewFireworkEvent creates a new firework event
func NewFireworkEvent(eventType Type, source interface{}, f *entity.Firework, pos physics.Vector2D, frame uint64) *FireworkEvent {
	return &FireworkEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		FireworkID: f.ID,
		Hue:        f.Hue,
		Position:   pos,
		Frame:      frame,
	}
}

// SimulationEvent describes a change to the whole simulation
type SimulationEvent struct {
	BaseEvent
	Width  float64
	Height float64
	Frame  uint64
}

// NewSimulationEvent creates a new simulation event
func NewSimulationEvent(eventType Type, source interface{}, width, height float64, frame uint64) *SimulationEvent {
	return &SimulationEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Width:  width,
		Height: height,
		Frame:  frame,
	}
}
