package surprise

// Quote is an attributed inspirational quote.
type Quote struct {
	Text   string
	Author string
}

// Joke is a two-line tech joke.
type Joke struct {
	Setup     string
	Punchline string
}

// Art is a named piece of ASCII art.
type Art struct {
	Name string
	Art  string
}

// Challenge is a small coding exercise.
type Challenge struct {
	Challenge  string
	Difficulty string
	Hint       string
}

// Game describes a mini-game offered to the user.
type Game struct {
	Name         string
	Description  string
	Instructions string
}

// Pools holds the content each generator draws from. Pools are read-only once
// handed to a Selector.
type Pools struct {
	Quotes      []Quote
	Jokes       []Joke
	Facts       []string
	Art         []Art
	Challenges  []Challenge
	Motivations []string
	Games       []Game
}

// DefaultPools returns the built-in content.
func DefaultPools() Pools {
	return Pools{
		Quotes:      quotes,
		Jokes:       jokes,
		Facts:       facts,
		Art:         art,
		Challenges:  challenges,
		Motivations: motivations,
		Games:       games,
	}
}

const celebrationMessage = "🎉 Surprise! You're awesome! 🎉"

var quotes = []Quote{
	{"The best way to predict the future is to invent it.", "Alan Kay"},
	{"Code is like humor. When you have to explain it, it's bad.", "Cory House"},
	{"First, solve the problem. Then, write the code.", "John Johnson"},
	{"Simplicity is the soul of efficiency.", "Austin Freeman"},
	{"Make it work, make it right, make it fast.", "Kent Beck"},
	{"The only way to learn a new programming language is by writing programs in it.", "Dennis Ritchie"},
	{"Talk is cheap. Show me the code.", "Linus Torvalds"},
	{"Any fool can write code that a computer can understand. Good programmers write code that humans can understand.", "Martin Fowler"},
}

var jokes = []Joke{
	{"Why do programmers prefer dark mode?", "Because light attracts bugs! 🐛"},
	{"Why do Java developers wear glasses?", "Because they can't C# 😎"},
	{"How many programmers does it take to change a light bulb?", "None. It's a hardware problem! 💡"},
	{"What's a programmer's favorite place?", "Foo Bar! 🍺"},
	{"Why did the programmer quit his job?", "Because he didn't get arrays! 💰"},
	{"What do you call a programmer from Finland?", "Nerdic! 🇫🇮"},
}

var facts = []string{
	"The first computer bug was an actual bug! In 1947, a moth was found trapped in a relay of the Harvard Mark II computer.",
	"The first computer programmer was Ada Lovelace in the 1840s, about 100 years before the first modern computer was built!",
	"The first 1GB hard drive, released in 1980, weighed over 500 pounds and cost $40,000.",
	"Python was named after Monty Python's Flying Circus, not the snake! 🐍",
	"The original name of Windows was 'Interface Manager'.",
	"The first domain ever registered was Symbolics.com on March 15, 1985.",
	"The first email was sent in 1971 by Ray Tomlinson to himself as a test.",
}

var art = []Art{
	{
		Name: "Robot",
		Art: `
    ╔═══╗
    ║ ◉ ║  Beep boop!
    ╚═╤═╝  I'm here to help!
      ║
    ╔═╧═╗
    ║   ║
    ╚═══╝
        `,
	},
	{
		Name: "Computer",
		Art: `
    ┌─────────────────┐
    │ > Code is Art  │
    │ > Keep Coding! │
    └─────────────────┘
         │││││││
        ═══════════
        `,
	},
	{
		Name: "Trophy",
		Art: `
        ___
       '   ` + "`" + `
      |  ★  |  You're
       '._.‚   Awesome!
        ║║║
       ═════
        `,
	},
	{
		Name: "Rocket",
		Art: `
         /\
        |  |
        |  |   To the moon! 🚀
       /____\
      | o  o |
      |______|
       /|  |\
        `,
	},
	{
		Name: "Cat",
		Art: `
     /\_/\
    ( o.o )  Meow!
     > ^ <   *purr*
    /|   |\
        `,
	},
}

var challenges = []Challenge{
	{
		Challenge:  "Write a function that reverses a string without using built-in reverse methods",
		Difficulty: "Easy",
		Hint:       "Try using a loop and string concatenation!",
	},
	{
		Challenge:  "Implement a function to check if a number is prime",
		Difficulty: "Easy",
		Hint:       "A prime number is only divisible by 1 and itself",
	},
	{
		Challenge:  "Create a function that finds the longest palindrome in a string",
		Difficulty: "Medium",
		Hint:       "Consider expanding around each character",
	},
	{
		Challenge:  "Write a function to detect if two strings are anagrams",
		Difficulty: "Easy",
		Hint:       "Anagrams have the same characters in different orders",
	},
}

var motivations = []string{
	"🌟 You're doing amazing! Keep up the great work!",
	"💪 Every expert was once a beginner. Keep learning!",
	"🚀 Your code today is better than your code yesterday!",
	"✨ Debugging is just another way of learning!",
	"🎯 Small progress is still progress. Keep going!",
	"🌈 Your creativity makes the world better through code!",
	"⚡ You've got this! One line of code at a time!",
}

var games = []Game{
	{
		Name:         "Number Guessing Game",
		Description:  "I'm thinking of a number between 1 and 100!",
		Instructions: "Try to guess it! Use the chat to make your guesses.",
	},
}
