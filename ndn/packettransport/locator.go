package packettransport

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/usnistgov/ndnlp/core/macaddr"
)

// VLAN range.
const (
	MinVLAN = 0x001
	MaxVLAN = 0xFFF
)

// ErrVLAN indicates the VLAN identifier is out of range.
var ErrVLAN = errors.New("VLAN out of range")

// Locator identifies an Ethernet link between two endpoints, optionally within a VLAN.
type Locator struct {
	// Local is the local MAC-48 unicast address.
	Local macaddr.Flag `json:"local"`

	// Remote is the remote MAC-48 address.
	// It may be a multicast group such as the NDN multicast group, in which case
	// frames from any source sent to this group are accepted.
	Remote macaddr.Flag `json:"remote"`

	// VLAN is the 802.1Q VLAN identifier, or zero for untagged frames.
	VLAN int `json:"vlan,omitempty"`
}

// Validate checks Locator fields.
func (loc Locator) Validate() error {
	if e := macaddr.CheckUnicast(loc.Local.HardwareAddr); e != nil {
		return fmt.Errorf("local %w", e)
	}
	if e := macaddr.CheckRemote(loc.Remote.HardwareAddr); e != nil {
		return fmt.Errorf("remote %w", e)
	}
	if loc.VLAN != 0 && (loc.VLAN < MinVLAN || loc.VLAN > MaxVLAN) {
		return fmt.Errorf("%w %d", ErrVLAN, loc.VLAN)
	}
	return nil
}

// Reverse returns the Locator seen from the remote endpoint.
// It is meaningful only if Remote is unicast.
func (loc Locator) Reverse() Locator {
	loc.Local, loc.Remote = loc.Remote, loc.Local
	return loc
}

func (loc Locator) String() string {
	s := loc.Local.String() + "-" + loc.Remote.String()
	if loc.VLAN != 0 {
		s += "@" + strconv.Itoa(loc.VLAN)
	}
	return s
}
