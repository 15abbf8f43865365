// Package testdata holds a small chart covering every grammar.
package testdata

import (
	"io"
	"strings"
)

// Chart has one of everything: an offset, a tap, a hold, two chained red
// arcs, a blue arc starting on a tap and a black curve with an arctap.
const Chart = `AudioOffset:248
-
timing(0,126.00,4.00);
(152485,4);
hold(7624,8950,1);
arc(662,1325,1.00,0.50,so,1.00,1.00,1,none,false);
arc(1325,2000,0.50,0.00,s,1.00,0.00,1,none,false);
(3000,2);
arc(3002,3500,0.27,0.50,b,0.03,1.00,0,none,false);
arc(5966,6629,0.50,0.50,s,1.00,1.00,0,none,true)[arctap(6298)];
scenecontrol(7000,trackhide);
`

// Hits is the hit file the chart produces
const Hits = `662 1 arc-sound
3000 0.25 tap-sound
6298 0.5 arctap-sound
7624 -0.25 tap-sound
152485 1.25 tap-sound
`

func Reader() io.Reader {
	return strings.NewReader(Chart)
}
