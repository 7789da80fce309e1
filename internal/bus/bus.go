package bus

import (
	"github.com/disgoorg/snowflake/v2"
)

const DefaultBuffer = 128

// Bus carries decoded gateway traffic from the discord bridge to the event
// loop. A single channel keeps delivery order identical to gateway order.
type Bus struct {
	GatewayEvents chan GatewayEvent
}

func New(buffer int) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	return &Bus{
		GatewayEvents: make(chan GatewayEvent, buffer),
	}
}

type GatewayEvent interface {
	gatewayEvent()
}

// ThreadCreated is emitted when a guild thread is created. ParentID is nil
// when the gateway payload did not include a parent channel.
type ThreadCreated struct {
	ThreadID snowflake.ID
	ParentID *snowflake.ID
}

func (ThreadCreated) gatewayEvent() {}

// TransportError reports a failure of the gateway connection itself. Fatal
// is set by the producer; the loop never infers fatality from the wrapped
// error's type.
type TransportError struct {
	Err   error
	Fatal bool
}

func (TransportError) gatewayEvent() {}
