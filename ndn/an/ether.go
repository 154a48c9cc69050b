package an

// EtherTypeNDN is the EtherType assigned to NDN.
const EtherTypeNDN = 0x8624

// UDPPortNDN is the UDP port assigned to NDN.
const UDPPortNDN = 6363
