package net

// Transport provides an interface for datagram transports to allow a router
// to exchange advertisements with its neighbors. Delivery is best effort:
// datagrams may be dropped, duplicated, or reordered, and the flooding
// protocol is expected to tolerate all three.
type Transport interface {

	// Listen starts the transport listening.
	Listen()

	// Consumer returns a channel that can be used to consume inbound
	// advertisements.
	Consumer() <-chan *Advertisement

	// Send transmits an advertisement to the target address. A send error
	// is reported but never retried; reliability is emergent from periodic
	// re-origination.
	Send(target string, ad *Advertisement) error

	// LocalAddr is used to return our local address.
	LocalAddr() string

	// Close permanently closes a transport, stopping any associated
	// goroutines and freeing other resources.
	Close() error
}
