package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAdminAliases(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "empty source",
			src:  "",
			want: nil,
		},
		{
			name: "all three conditions met",
			src: `
contract T {
    address private secondAdmin;
    constructor() { secondAdmin = msg.sender; }
    function f() public { require(secondAdmin == msg.sender); }
}`,
			want: []string{"secondAdmin"},
		},
		{
			name: "assigned but never compared",
			src: `
address private keeper;
constructor() { keeper = msg.sender; }`,
			want: nil,
		},
		{
			name: "compared but never assigned",
			src: `
address private keeper;
function f() public { require(keeper == msg.sender); }`,
			want: nil,
		},
		{
			name: "not a state variable",
			src: `
function f() public {
    ctl = msg.sender;
    require(ctl != msg.sender);
}`,
			want: nil,
		},
		{
			name: "benign names ignored",
			src: `
address public owner;
constructor() { owner = msg.sender; }
function f() public { require(owner == msg.sender); }`,
			want: nil,
		},
		{
			name: "multiple aliases sorted",
			src: `
address private zeta;
address private alpha;
constructor() { zeta = msg.sender; alpha = msg.sender; }
function f() public { require(zeta == msg.sender && alpha != msg.sender); }`,
			want: []string{"alpha", "zeta"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectAdminAliases(tt.src))
		})
	}
}
