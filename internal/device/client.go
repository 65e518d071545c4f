// internal/device/client.go
package device

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Timeout is the fixed transport timeout. There is no application-level
// timeout beyond it and no cancellation primitive: a stuck transaction
// holds the lock for at most this long.
const Timeout = 10 * time.Second

// coilOn is the Modbus wire value for writing a coil to ON (FC 5).
const coilOn = 0xFF00

// ErrNotConnected is returned when the one connect attempt of a call fails.
var ErrNotConnected = errors.New("device: not connected")

// Client serializes all access to a single RDZ controller connection.
// The protocol is not safe for concurrent multiplexed requests, so every
// operation holds one mutex for its full round trip. The connection is
// (re)established lazily on first use after any prior failure; each call
// makes exactly one connect attempt and reports failure without retry.
type Client struct {
	host string
	port int

	mu        sync.Mutex
	handler   *modbus.TCPClientHandler
	client    modbus.Client
	connected bool
}

// New creates an unconnected client. No IO happens until the first call.
func New(host string, port int) *Client {
	return &Client{host: host, port: port}
}

// Host returns the configured controller host.
func (c *Client) Host() string { return c.host }

// connectLocked dials if needed. Caller must hold c.mu.
func (c *Client) connectLocked() error {
	if c.connected {
		return nil
	}

	if c.handler == nil {
		h := modbus.NewTCPClientHandler(fmt.Sprintf("%s:%d", c.host, c.port))
		h.Timeout = Timeout
		c.handler = h
		c.client = modbus.NewClient(h)
	}

	if err := c.handler.Connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}

	c.connected = true
	log.Printf("device: connected to %s:%d", c.host, c.port)
	return nil
}

// dropLocked tears the connection down after a transport failure so the
// next call redials. Caller must hold c.mu.
func (c *Client) dropLocked() {
	if c.handler != nil {
		_ = c.handler.Close()
	}
	c.connected = false
}

// fail records a failed transaction. Protocol exceptions (the device
// answered, but with an error response) keep the connection; transport
// errors drop it.
func (c *Client) fail(op string, addr uint16, err error) error {
	var mbErr *modbus.ModbusError
	if errors.As(err, &mbErr) {
		log.Printf("device: %s at %d: %v", op, addr, err)
		return fmt.Errorf("device: %s at %d: %w", op, addr, err)
	}

	c.dropLocked()
	log.Printf("device: %s at %d: %v (connection dropped)", op, addr, err)
	return fmt.Errorf("device: %s at %d: %w", op, addr, err)
}

// Connect establishes the connection if needed. Idempotent.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

// Close disconnects. Idempotent and safe to call when not connected.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handler == nil {
		return nil
	}
	err := c.handler.Close()
	c.connected = false
	return err
}

// ReadRegisters reads qty holding registers starting at addr.
func (c *Client) ReadRegisters(addr, qty uint16) ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(); err != nil {
		return nil, err
	}

	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, c.fail("read registers", addr, err)
	}
	if len(raw) < int(qty)*2 {
		return nil, c.fail("read registers", addr, fmt.Errorf("short response: %d bytes", len(raw)))
	}

	return unpackRegisters(raw, int(qty)), nil
}

// WriteRegister writes a single holding register.
func (c *Client) WriteRegister(addr, value uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(); err != nil {
		return err
	}

	if _, err := c.client.WriteSingleRegister(addr, value); err != nil {
		return c.fail("write register", addr, err)
	}
	return nil
}

// ReadCoils reads qty coils starting at addr.
func (c *Client) ReadCoils(addr, qty uint16) ([]bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(); err != nil {
		return nil, err
	}

	raw, err := c.client.ReadCoils(addr, qty)
	if err != nil {
		return nil, c.fail("read coils", addr, err)
	}

	return unpackBits(raw, int(qty)), nil
}

// ReadCoil reads one coil.
func (c *Client) ReadCoil(addr uint16) (bool, error) {
	bits, err := c.ReadCoils(addr, 1)
	if err != nil {
		return false, err
	}
	return bits[0], nil
}

// WriteCoil writes one coil.
func (c *Client) WriteCoil(addr uint16, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(); err != nil {
		return err
	}

	var value uint16
	if on {
		value = coilOn
	}

	if _, err := c.client.WriteSingleCoil(addr, value); err != nil {
		return c.fail("write coil", addr, err)
	}
	return nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte, count int) []uint16 {
	out := make([]uint16, count)
	for i := 0; i < count; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}

func unpackBits(data []byte, count int) []bool {
	out := make([]bool, count)
	for i := 0; i < count; i++ {
		byteIdx := i / 8
		if byteIdx >= len(data) {
			continue
		}
		out[i] = data[byteIdx]&(1<<uint(i%8)) != 0
	}
	return out
}
