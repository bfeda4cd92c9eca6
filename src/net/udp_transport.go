package net

import (
	"net"
	"sync"

	"github.com/sirupsen/logrus"
)

const udpBufferSize = 65507

// UDPTransport implements the Transport interface over UDP datagrams. Each
// advertisement is one datagram; there is no connection state, no
// acknowledgment, and no retry.
type UDPTransport struct {
	conn       *net.UDPConn
	consumerCh chan *Advertisement
	logger     *logrus.Entry

	shutdown     bool
	shutdownCh   chan struct{}
	shutdownLock sync.Mutex
}

// NewUDPTransport binds a UDP socket on bindAddr and returns the transport.
// Listen must be called to start consuming datagrams.
func NewUDPTransport(bindAddr string, logger *logrus.Entry) (*UDPTransport, error) {
	addr, err := net.ResolveUDPAddr("udp", bindAddr)
	if err != nil {
		return nil, err
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, err
	}

	return &UDPTransport{
		conn:       conn,
		consumerCh: make(chan *Advertisement, 256),
		logger:     logger,
		shutdownCh: make(chan struct{}),
	}, nil
}

// Listen implements the Transport interface. It blocks, reading datagrams
// one at a time until the transport is closed. Payloads that do not decode
// into a well-formed advertisement are dropped.
func (u *UDPTransport) Listen() {
	buf := make([]byte, udpBufferSize)
	for {
		n, from, err := u.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-u.shutdownCh:
				return
			default:
				u.logger.WithError(err).Error("Failed to read datagram")
				continue
			}
		}

		ad := new(Advertisement)
		if err := ad.Unmarshal(buf[:n]); err != nil {
			u.logger.WithFields(logrus.Fields{
				"from":  from.String(),
				"bytes": n,
				"error": err,
			}).Warn("Dropping undecodable datagram")
			continue
		}

		select {
		case u.consumerCh <- ad:
		case <-u.shutdownCh:
			return
		}
	}
}

// Consumer implements the Transport interface.
func (u *UDPTransport) Consumer() <-chan *Advertisement {
	return u.consumerCh
}

// LocalAddr implements the Transport interface.
func (u *UDPTransport) LocalAddr() string {
	return u.conn.LocalAddr().String()
}

// Send implements the Transport interface.
func (u *UDPTransport) Send(target string, ad *Advertisement) error {
	addr, err := net.ResolveUDPAddr("udp", target)
	if err != nil {
		return err
	}

	payload, err := ad.Marshal()
	if err != nil {
		return err
	}

	_, err = u.conn.WriteToUDP(payload, addr)
	return err
}

// Close implements the Transport interface.
func (u *UDPTransport) Close() error {
	u.shutdownLock.Lock()
	defer u.shutdownLock.Unlock()

	if u.shutdown {
		return nil
	}

	u.shutdown = true
	close(u.shutdownCh)
	return u.conn.Close()
}
