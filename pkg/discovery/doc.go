// Package discovery finds development issuer services on the local network
// using DNS-SD over mDNS.
//
// A simulated issuer advertises itself as:
//
//	<name>._passissuer._tcp.local.
//
// with TXT records:
//
//	v=1            protocol version
//	path=/v1       API base path
//	name=<text>    display name (optional)
//	nets=visa,amex supported payment networks (optional)
//
// Browser aggregates answers by instance name. Addresses seen on several
// interfaces are merged into one IssuerService.
package discovery
