package identity

// DefaultNames is the pool anonymous nicknames are drawn from.
var DefaultNames = []string{
	"Anonymous Aardvark",
	"Anonymous Albatross",
	"Anonymous Alligator",
	"Anonymous Armadillo",
	"Anonymous Axolotl",
	"Anonymous Badger",
	"Anonymous Beaver",
	"Anonymous Bison",
	"Anonymous Caracal",
	"Anonymous Chameleon",
	"Anonymous Cheetah",
	"Anonymous Chinchilla",
	"Anonymous Coyote",
	"Anonymous Dingo",
	"Anonymous Dolphin",
	"Anonymous Elephant",
	"Anonymous Ferret",
	"Anonymous Flamingo",
	"Anonymous Fox",
	"Anonymous Gecko",
	"Anonymous Giraffe",
	"Anonymous Hedgehog",
	"Anonymous Hippo",
	"Anonymous Ibex",
	"Anonymous Iguana",
	"Anonymous Jackal",
	"Anonymous Jaguar",
	"Anonymous Kangaroo",
	"Anonymous Koala",
	"Anonymous Lemur",
	"Anonymous Llama",
	"Anonymous Lynx",
	"Anonymous Manatee",
	"Anonymous Meerkat",
	"Anonymous Narwhal",
	"Anonymous Ocelot",
	"Anonymous Otter",
	"Anonymous Panda",
	"Anonymous Pangolin",
	"Anonymous Penguin",
	"Anonymous Platypus",
	"Anonymous Quokka",
	"Anonymous Raccoon",
	"Anonymous Rhino",
	"Anonymous Salamander",
	"Anonymous Squirrel",
	"Anonymous Tapir",
	"Anonymous Tortoise",
	"Anonymous Wallaby",
	"Anonymous Walrus",
	"Anonymous Wombat",
	"Anonymous Yak",
	"Anonymous Zebra",
}
