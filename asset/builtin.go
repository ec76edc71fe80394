package asset

// Built-in pixmaps for the demo game, in XPM3 string form

// ShipXPM is the player's ship
var ShipXPM = []string{
	"9 7 4 1",
	"  c None",
	". c #40C0FF",
	"o c white",
	"x c #FF8000",
	"    o    ",
	"   ...   ",
	"   .o.   ",
	"  .....  ",
	" ....... ",
	".. ... ..",
	"x   x   x",
}

// RockXPM holds the two animation frames of a rock
var RockXPM = [][]string{
	{
		"6 6 3 1",
		"  c None",
		"# c #A08060",
		"+ c #D0B090",
		" #### ",
		"##+###",
		"#+####",
		"####+#",
		"###+##",
		" #### ",
	},
	{
		"6 6 3 1",
		"  c None",
		"# c #A08060",
		"+ c #D0B090",
		" #### ",
		"###+##",
		"####+#",
		"#+####",
		"##+###",
		" #### ",
	},
}

// ShotXPM is a projectile
var ShotXPM = []string{
	"1 3 2 1",
	"y c yellow",
	"w c white",
	"w",
	"y",
	"y",
}

// SparkXPM marks a hit
var SparkXPM = []string{
	"3 3 2 1",
	"  c None",
	"* c #FFFF80",
	"* *",
	" * ",
	"* *",
}
