package main

const (
	// tciOffset is the offset of the 802.1Q tag control information in an
	// Ethernet frame: destination MAC, source MAC and the 0x8100 TPID come first.
	tciOffset = 14

	maxVLANID = 0x0fff
)

// vlanID extracts the 12-bit VLAN identifier from the outer 802.1Q tag of a raw
// Ethernet frame. The identifier is the low nibble of frame[14] followed by
// frame[15]; priority and drop eligible bits are discarded.
//
// The frame is assumed to be tagged (the capture filter guarantees it), so the
// TPID is not checked. Returns false if the frame is too short to hold a tag.
func vlanID(frame []byte) (uint16, bool) {
	if len(frame) < tciOffset+2 {
		return 0, false
	}

	id := uint16(frame[tciOffset]&0x0f)<<8 | uint16(frame[tciOffset+1])
	return id & maxVLANID, true
}
