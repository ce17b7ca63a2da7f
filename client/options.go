package client

import (
	"crypto/tls"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/breezymind/mqttcore/dispatch"
	"github.com/breezymind/mqttcore/host"
	"github.com/breezymind/mqttcore/logging"
	"github.com/breezymind/mqttcore/tracing"
	"github.com/breezymind/mqttcore/transport"
)

// MessageHandler is invoked for every inbound PUBLISH on the reader
// goroutine. When Options.Dispatcher is set, each message goes to the
// Pool's own handler instead and MessageHandler is not called. If
// MessageHandler is nil, inbound messages are dropped on either path.
type MessageHandler func(topic string, payload []byte)

// Options is the immutable configuration surface set at create-time.
type Options struct {
	Host string
	Port uint16

	// ClientID is generated with google/uuid if left empty — most brokers
	// require a non-empty identifier, and requiring every caller to invent
	// one by hand is needless friction.
	ClientID string

	Username    string
	Password    string
	HasUsername bool
	HasPassword bool

	KeepAlive    uint16
	CleanSession bool

	// TLSConfig, if non-nil, wraps the dialed TCP connection in TLS.
	TLSConfig *tls.Config

	// Dialer overrides how the transport connects; tests inject a
	// transport.Loopback pair here. If nil, a TCP (or TLS) dialer is
	// built from Host/Port/TLSConfig.
	Dialer transport.Dialer

	// Clock overrides the keepalive/reconnect timing source; tests inject
	// a host.FakeClock. Defaults to host.NewRealClock().
	Clock host.Clock

	MessageHandler MessageHandler

	// Dispatcher, if set, hands PUBLISH delivery to an ants-backed worker
	// pool instead of invoking MessageHandler inline on the reader.
	Dispatcher *dispatch.Pool

	Logger *zap.SugaredLogger
	Tracer trace.Tracer
}

func (o *Options) setDefaults() {
	if o.ClientID == "" {
		o.ClientID = "mqttcore-" + uuid.New().String()
	}
	if o.Clock == nil {
		o.Clock = host.NewRealClock()
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	if o.Tracer == nil {
		o.Tracer = tracing.Tracer()
	}
}
