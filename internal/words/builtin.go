package words

// Builtin returns the categories shipped with the game
func Builtin() []Category {
	return []Category{
		{
			ID:   "tech",
			Name: "Tech",
			Words: []string{
				"hacker", "cyborg", "android", "hologram", "robot",
				"laser", "drone", "satellite", "keyboard", "joystick",
				"console", "antenna", "radar", "firewall", "pixel",
			},
		},
		{
			ID:   "animals",
			Name: "Animals",
			Words: []string{
				"dragon", "unicorn", "octopus", "dolphin", "tiger",
				"falcon", "wolf", "panther", "cobra", "scorpion",
				"penguin", "giraffe", "kangaroo", "beetle", "flamingo",
			},
		},
		{
			ID:   "places",
			Name: "Places",
			Words: []string{
				"casino", "subway", "rooftop", "warehouse", "temple",
				"fortress", "pyramid", "bunker", "harbor", "stadium",
				"hospital", "library", "airport", "beach", "submarine",
			},
		},
		{
			ID:   "objects",
			Name: "Objects",
			Words: []string{
				"mirror", "helmet", "compass", "lantern", "umbrella",
				"hammer", "anchor", "hourglass", "whistle", "table",
				"ladder", "backpack", "candle", "scissors", "telescope",
			},
		},
		{
			ID:   "food",
			Name: "Food & Drinks",
			Words: []string{
				"coffee", "sushi", "burger", "pizza", "chocolate",
				"vanilla", "cinnamon", "wasabi", "honey", "pancake",
				"lasagna", "popcorn", "lemonade", "avocado", "croissant",
			},
		},
		{
			ID:   "nature",
			Name: "Nature",
			Words: []string{
				"thunder", "tornado", "volcano", "glacier", "meteor",
				"eclipse", "aurora", "tsunami", "avalanche", "rainbow",
				"desert", "jungle", "waterfall", "canyon", "island",
			},
		},
		{
			ID:   "jobs",
			Name: "Jobs",
			Words: []string{
				"firefighter", "astronaut", "chef", "dentist", "pilot",
				"plumber", "lawyer", "farmer", "magician", "detective",
				"nurse", "architect", "lifeguard", "barber", "sailor",
			},
		},
		{
			ID:   "art",
			Name: "Music & Art",
			Words: []string{
				"rhythm", "melody", "symphony", "canvas", "sculpture",
				"graffiti", "tattoo", "mosaic", "origami", "guitar",
				"violin", "ballet", "opera", "piano", "kaleidoscope",
			},
		},
	}
}
