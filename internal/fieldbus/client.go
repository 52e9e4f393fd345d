// internal/fieldbus/client.go
package fieldbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Client is a single Modbus connection (TCP or RTU) to one endpoint.
// It serializes requests because it mutates the slave id per write.
// After a transport error the connection is dropped; the next request
// reconnects.
type Client struct {
	mu       sync.Mutex
	handler  handler
	setSlave func(uint8)
	client   modbus.Client
	unitID   uint8
}

// handler is what both goburrow TCP and RTU handlers provide.
type handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

type Config struct {
	Transport string // tcp | rtu
	Endpoint  string // host:port or serial device
	UnitID    uint8
	Timeout   time.Duration
	Serial    Serial
}

type Serial struct {
	BaudRate int
	DataBits int
	Parity   string
	StopBits int
}

// Dial creates a connected client. It fails fast if the first connect fails.
func Dial(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("fieldbus: endpoint required")
	}

	c := &Client{unitID: cfg.UnitID}

	switch cfg.Transport {
	case "", "tcp":
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		c.handler = h
		c.setSlave = func(id uint8) { h.SlaveId = id }

	case "rtu":
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.BaudRate = cfg.Serial.BaudRate
		h.DataBits = cfg.Serial.DataBits
		h.Parity = cfg.Serial.Parity
		h.StopBits = cfg.Serial.StopBits
		h.SlaveId = cfg.UnitID
		c.handler = h
		c.setSlave = func(id uint8) { h.SlaveId = id }

	default:
		return nil, fmt.Errorf("fieldbus: unsupported transport %q", cfg.Transport)
	}

	if err := c.handler.Connect(); err != nil {
		return nil, fmt.Errorf("fieldbus: connect %s: %w", cfg.Endpoint, err)
	}
	c.client = modbus.NewClient(c.handler)

	return c, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// ---- reads (poller.Client) ----

func (c *Client) ReadCoils(addr, qty uint16) ([]bool, error) {
	b, err := c.read(c.client.ReadCoils, addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackBits(b, int(qty)), nil
}

func (c *Client) ReadDiscreteInputs(addr, qty uint16) ([]bool, error) {
	b, err := c.read(c.client.ReadDiscreteInputs, addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackBits(b, int(qty)), nil
}

func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	b, err := c.read(c.client.ReadHoldingRegisters, addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackRegisters(b, int(qty))
}

func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	b, err := c.read(c.client.ReadInputRegisters, addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackRegisters(b, int(qty))
}

// ---- writes (writer.endpointClient) ----

func (c *Client) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if len(regs) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(unitID)
	defer c.setSlave(c.unitID)

	_, err := c.client.WriteMultipleRegisters(addr, uint16(len(regs)), packRegisters(regs))
	if err != nil {
		c.drop()
		return err
	}
	return nil
}

// ---- internal ----

func (c *Client) read(fn func(addr, qty uint16) ([]byte, error), addr, qty uint16) ([]byte, error) {
	if qty == 0 {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := fn(addr, qty)
	if err != nil {
		c.drop()
		return nil, err
	}
	return b, nil
}

// drop closes the transport so the next request reconnects. Caller holds mu.
func (c *Client) drop() {
	_ = c.handler.Close()
}

// ---- helpers (pure geometry) ----

// unpackBits expands Modbus packed bits (LSB first) into count bools.
func unpackBits(data []byte, count int) []bool {
	out := make([]bool, count)
	for i := 0; i < count; i++ {
		byteIdx := i / 8
		if byteIdx >= len(data) {
			break
		}
		out[i] = data[byteIdx]&(1<<uint(i%8)) != 0
	}
	return out
}

// unpackRegisters decodes big-endian register payload.
func unpackRegisters(data []byte, count int) ([]uint16, error) {
	if len(data) < 2*count {
		return nil, fmt.Errorf("fieldbus: short register payload: got %d bytes want %d", len(data), 2*count)
	}
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out, nil
}

// packRegisters encodes registers in Modbus memory order (big-endian).
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
