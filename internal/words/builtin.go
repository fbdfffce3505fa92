package words

var standardPairs = []Pair{
	// places
	{Civilian: "Beach", Undercover: "Lake", Category: "Places", ID: "static_1"},
	{Civilian: "Library", Undercover: "Bookshop", Category: "Places", ID: "static_2"},
	{Civilian: "Airport", Undercover: "Train Station", Category: "Places", ID: "static_3"},
	{Civilian: "Paris", Undercover: "Rome", Category: "Places", ID: "static_4"},
	{Civilian: "Hospital", Undercover: "Pharmacy", Category: "Places", ID: "static_5"},
	{Civilian: "Gym", Undercover: "Swimming Pool", Category: "Places", ID: "static_6"},
	{Civilian: "Cinema", Undercover: "Theatre", Category: "Places", ID: "static_7"},
	{Civilian: "University", Undercover: "High School", Category: "Places", ID: "static_8"},
	{Civilian: "Desert", Undercover: "Savanna", Category: "Places", ID: "static_9"},
	{Civilian: "Castle", Undercover: "Palace", Category: "Places", ID: "static_10"},

	// food
	{Civilian: "Pizza", Undercover: "Flatbread", Category: "Food", ID: "static_11"},
	{Civilian: "Coffee", Undercover: "Tea", Category: "Food", ID: "static_12"},
	{Civilian: "Burger", Undercover: "Hot Dog", Category: "Food", ID: "static_13"},
	{Civilian: "Sushi", Undercover: "Ceviche", Category: "Food", ID: "static_14"},
	{Civilian: "Pancake", Undercover: "Waffle", Category: "Food", ID: "static_15"},
	{Civilian: "Honey", Undercover: "Maple Syrup", Category: "Food", ID: "static_16"},
	{Civilian: "Croissant", Undercover: "Brioche", Category: "Food", ID: "static_17"},
	{Civilian: "Mango", Undercover: "Papaya", Category: "Food", ID: "static_18"},
	{Civilian: "Ice Cream", Undercover: "Frozen Yogurt", Category: "Food", ID: "static_19"},
	{Civilian: "Soup", Undercover: "Stew", Category: "Food", ID: "static_20"},

	// concepts
	{Civilian: "Dream", Undercover: "Nightmare", Category: "Concepts", ID: "static_21"},
	{Civilian: "Truth", Undercover: "Rumor", Category: "Concepts", ID: "static_22"},
	{Civilian: "Luck", Undercover: "Fate", Category: "Concepts", ID: "static_23"},
	{Civilian: "Talent", Undercover: "Practice", Category: "Concepts", ID: "static_24"},
	{Civilian: "Courage", Undercover: "Recklessness", Category: "Concepts", ID: "static_25"},
	{Civilian: "Nostalgia", Undercover: "Regret", Category: "Concepts", ID: "static_26"},
	{Civilian: "Salary", Undercover: "Allowance", Category: "Concepts", ID: "static_27"},
	{Civilian: "Introvert", Undercover: "Extrovert", Category: "Concepts", ID: "static_28"},

	// tech
	{Civilian: "Laptop", Undercover: "Tablet", Category: "Tech", ID: "static_29"},
	{Civilian: "Email", Undercover: "Text Message", Category: "Tech", ID: "static_30"},
	{Civilian: "Podcast", Undercover: "Radio", Category: "Tech", ID: "static_31"},
	{Civilian: "Smartwatch", Undercover: "Fitness Band", Category: "Tech", ID: "static_32"},
	{Civilian: "Wifi", Undercover: "Bluetooth", Category: "Tech", ID: "static_33"},
	{Civilian: "Video Call", Undercover: "Phone Call", Category: "Tech", ID: "static_34"},
	{Civilian: "Streaming", Undercover: "Cable TV", Category: "Tech", ID: "static_35"},

	// culture and leisure
	{Civilian: "Football", Undercover: "Rugby", Category: "Sports", ID: "static_36"},
	{Civilian: "Tennis", Undercover: "Badminton", Category: "Sports", ID: "static_37"},
	{Civilian: "Chess", Undercover: "Checkers", Category: "Games", ID: "static_38"},
	{Civilian: "Monopoly", Undercover: "Scrabble", Category: "Games", ID: "static_39"},
	{Civilian: "Wedding", Undercover: "Engagement", Category: "Culture", ID: "static_40"},
	{Civilian: "Birthday", Undercover: "Anniversary", Category: "Culture", ID: "static_41"},
	{Civilian: "Guitar", Undercover: "Violin", Category: "Music", ID: "static_42"},
	{Civilian: "Piano", Undercover: "Organ", Category: "Music", ID: "static_43"},
	{Civilian: "Vampire", Undercover: "Werewolf", Category: "Fiction", ID: "static_44"},
	{Civilian: "Pirate", Undercover: "Viking", Category: "Fiction", ID: "static_45"},

	// animals
	{Civilian: "Dog", Undercover: "Wolf", Category: "Animals", ID: "static_46"},
	{Civilian: "Dolphin", Undercover: "Shark", Category: "Animals", ID: "static_47"},
	{Civilian: "Owl", Undercover: "Eagle", Category: "Animals", ID: "static_48"},
	{Civilian: "Butterfly", Undercover: "Moth", Category: "Animals", ID: "static_49"},
	{Civilian: "Horse", Undercover: "Donkey", Category: "Animals", ID: "static_50"},
}

var maturePairs = []Pair{
	{Civilian: "Flirting", Undercover: "Cheating", Category: "Relationships", ID: "spicy_1"},
	{Civilian: "Divorce", Undercover: "Breakup", Category: "Relationships", ID: "spicy_2"},
	{Civilian: "Ex", Undercover: "Crush", Category: "Relationships", ID: "spicy_3"},
	{Civilian: "Secret", Undercover: "Scandal", Category: "Drama", ID: "spicy_4"},
	{Civilian: "Bribe", Undercover: "Tip", Category: "Money", ID: "spicy_5"},
	{Civilian: "Hangover", Undercover: "Jet Lag", Category: "Nightlife", ID: "spicy_6"},
	{Civilian: "Casino", Undercover: "Stock Market", Category: "Money", ID: "spicy_7"},
	{Civilian: "Jealousy", Undercover: "Envy", Category: "Drama", ID: "spicy_8"},
	{Civilian: "Debt", Undercover: "Mortgage", Category: "Money", ID: "spicy_9"},
	{Civilian: "Gossip", Undercover: "News", Category: "Drama", ID: "spicy_10"},
	{Civilian: "Betrayal", Undercover: "Disloyalty", Category: "Drama", ID: "spicy_11"},
	{Civilian: "Manipulation", Undercover: "Persuasion", Category: "Drama", ID: "spicy_12"},
	{Civilian: "Blind Date", Undercover: "Dating App", Category: "Relationships", ID: "spicy_13"},
	{Civilian: "Tax Evasion", Undercover: "Loophole", Category: "Money", ID: "spicy_14"},
	{Civilian: "Nightclub", Undercover: "House Party", Category: "Nightlife", ID: "spicy_15"},
	{Civilian: "White Lie", Undercover: "Excuse", Category: "Drama", ID: "spicy_16"},
	{Civilian: "Stalking", Undercover: "Following", Category: "Drama", ID: "spicy_17"},
	{Civilian: "Gambling", Undercover: "Investing", Category: "Money", ID: "spicy_18"},
	{Civilian: "Walk of Shame", Undercover: "Morning Jog", Category: "Nightlife", ID: "spicy_19"},
	{Civilian: "Prenup", Undercover: "Contract", Category: "Relationships", ID: "spicy_20"},
}
