package pet

// DefaultXPPerTask is the reward for one completed task.
const DefaultXPPerTask = 10

// DefaultStages is the 30-stage ladder where each stage costs 75% more XP
// than the one before, starting at 10 XP for stage 1.
func DefaultStages() []Stage {
	return []Stage{
		{Index: 0, Name: "Egg", MinXP: 0, Image: "🥚", Color: "#E8E8E8"},
		{Index: 1, Name: "Chicken", MinXP: 10, Image: "🐔", Color: "#FFD700"},
		{Index: 2, Name: "Weasel", MinXP: 28, Image: "🦡", Color: "#8B7355"},
		{Index: 3, Name: "Badger", MinXP: 58, Image: "🦡", Color: "#696969"},
		{Index: 4, Name: "Hawk", MinXP: 111, Image: "🦅", Color: "#8B4513"},
		{Index: 5, Name: "Barracuda", MinXP: 204, Image: "🐟", Color: "#4682B4"},
		{Index: 6, Name: "Coyote", MinXP: 367, Image: "🐺", Color: "#D2B48C"},
		{Index: 7, Name: "Wild Boar", MinXP: 652, Image: "🐗", Color: "#8B4513"},
		{Index: 8, Name: "Wolf", MinXP: 1151, Image: "🐺", Color: "#708090"},
		{Index: 9, Name: "Crocodile", MinXP: 2024, Image: "🐊", Color: "#556B2F"},
		{Index: 10, Name: "Mako Shark", MinXP: 3552, Image: "🦈", Color: "#4682B4"},
		{Index: 11, Name: "Great White Shark", MinXP: 6226, Image: "🦈", Color: "#708090"},
		{Index: 12, Name: "Orca", MinXP: 10906, Image: "🐋", Color: "#2F4F4F"},
		{Index: 13, Name: "Bison", MinXP: 19096, Image: "🦬", Color: "#8B4513"},
		{Index: 14, Name: "Bull", MinXP: 33418, Image: "🐂", Color: "#A0522D"},
		{Index: 15, Name: "Stallion", MinXP: 58482, Image: "🐴", Color: "#8B4513"},
		{Index: 16, Name: "Grizzly Bear", MinXP: 102344, Image: "🐻", Color: "#8B4513"},
		{Index: 17, Name: "Polar Bear", MinXP: 179102, Image: "🐻‍❄️", Color: "#F0F8FF"},
		{Index: 18, Name: "Rhinoceros", MinXP: 313429, Image: "🦏", Color: "#696969"},
		{Index: 19, Name: "Hippopotamus", MinXP: 548501, Image: "🦛", Color: "#708090"},
		{Index: 20, Name: "Elephant", MinXP: 959877, Image: "🐘", Color: "#808080"},
		{Index: 21, Name: "Silver Back Gorilla", MinXP: 1679785, Image: "🦍", Color: "#2F4F4F"},
		{Index: 22, Name: "Cape Buffalo", MinXP: 2939624, Image: "🐃", Color: "#2F4F4F"},
		{Index: 23, Name: "Lion", MinXP: 5144342, Image: "🦁", Color: "#DAA520"},
		{Index: 24, Name: "Komodo Dragon", MinXP: 9002598, Image: "🦎", Color: "#556B2F"},
		{Index: 25, Name: "Eagle", MinXP: 15754547, Image: "🦅", Color: "#8B4513"},
		{Index: 26, Name: "Phoenix", MinXP: 27570457, Image: "🔥", Color: "#FF4500"},
		{Index: 27, Name: "Dragon", MinXP: 48248300, Image: "🐉", Color: "#8B0000"},
		{Index: 28, Name: "Human CEO", MinXP: 84434525, Image: "👔", Color: "#4169E1"},
		{Index: 29, Name: "Golden CEO", MinXP: 147760419, Image: "👑", Color: "#FFD700"},
	}
}

// DefaultProgression is the stock balance table.
func DefaultProgression() Progression {
	return Progression{Stages: DefaultStages(), XPPerTask: DefaultXPPerTask}
}
