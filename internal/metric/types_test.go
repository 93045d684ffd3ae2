package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProtocol(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Protocol
		ok    bool
	}{
		{name: "tcp", input: "tcp", want: TCP, ok: true},
		{name: "tcp6", input: "tcp6", want: TCP6, ok: true},
		{name: "udp", input: "udp", want: UDP, ok: true},
		{name: "udp6", input: "udp6", want: UDP6, ok: true},
		{name: "empty", input: "", ok: false},
		{name: "unknown", input: "sctp", ok: false},
		{name: "case sensitive", input: "TCP", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseProtocol(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestProtocolValid(t *testing.T) {
	for _, p := range Protocols() {
		assert.True(t, p.Valid(), "protocol %s should be valid", p)
	}
	assert.False(t, Protocol("icmp").Valid())
}

func TestPortString(t *testing.T) {
	assert.Equal(t, "443/tcp", Port{Number: 443, Protocol: TCP}.String())
	assert.Equal(t, "53/udp", Port{Number: 53, Protocol: UDP}.String())
}

func TestSortPorts(t *testing.T) {
	m := map[Port]bool{
		{Number: 443, Protocol: TCP}: true,
		{Number: 80, Protocol: UDP}:  false,
		{Number: 80, Protocol: TCP}:  true,
		{Number: 22, Protocol: TCP}:  true,
	}

	got := SortPorts(m)

	want := []Port{
		{Number: 22, Protocol: TCP},
		{Number: 80, Protocol: TCP},
		{Number: 80, Protocol: UDP},
		{Number: 443, Protocol: TCP},
	}
	assert.Equal(t, want, got, "ports sort by number first, then protocol")
}

func TestOptIntString(t *testing.T) {
	assert.Equal(t, "Unknown", OptInt{}.String())
	assert.Equal(t, "0", SomeInt(0).String(), "a present zero is not unknown")
	assert.Equal(t, "312", SomeInt(312).String())
}

func TestOptFloatString(t *testing.T) {
	assert.Equal(t, "Unknown", OptFloat{}.String())
	assert.Equal(t, "0.42", SomeFloat(0.42).String())
	assert.Equal(t, "1", SomeFloat(1.0).String())
}

func TestSnapshotSortedViews(t *testing.T) {
	snap := &Snapshot{
		Ports: map[Port]bool{
			{Number: 8080, Protocol: TCP}: true,
			{Number: 22, Protocol: TCP}:   true,
		},
		Services: map[string]bool{"nginx": true, "cron": false, "sshd": true},
	}

	assert.Equal(t, []string{"cron", "nginx", "sshd"}, snap.SortedServices())
	assert.Equal(t, []Port{
		{Number: 22, Protocol: TCP},
		{Number: 8080, Protocol: TCP},
	}, snap.SortedPorts())
}
