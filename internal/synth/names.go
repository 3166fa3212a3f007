package synth

// Company name components.
var companyStems = []string{
	"Vertex", "Northwind", "Cobalt", "Harbor", "Summit",
	"Aurora", "Pinnacle", "Meridian", "Cascade", "Lattice",
	"Haven", "Orchid", "Granite", "Beacon", "Atlas",
	"Willow", "Crescent", "Ember", "Falcon", "Juniper",
	"Sterling", "Redwood", "Quartz", "Monarch", "Drift",
}

var companySuffixes = []string{
	"Dynamics", "Holdings", "Industries", "Group", "Ventures",
	"Trading", "Collective", "Partners", "Supply", "Labs",
	"Works", "Outfitters", "Goods", "Mercantile", "Brands",
}

// Buzz phrase components used for subcategory names.
var buzzVerbs = []string{
	"streamline", "empower", "optimize", "scale", "deliver",
	"integrate", "enable", "unlock", "transform", "leverage",
	"orchestrate", "expedite", "cultivate", "maximize", "harness",
}

var buzzAdjectives = []string{
	"seamless", "turnkey", "dynamic", "frictionless", "granular",
	"robust", "holistic", "vertical", "distributed", "bleeding-edge",
	"compelling", "sticky", "enterprise", "proactive", "ubiquitous",
}

var buzzNouns = []string{
	"experiences", "channels", "deliverables", "markets", "platforms",
	"solutions", "paradigms", "synergies", "portals", "supply-chains",
	"communities", "ecosystems", "initiatives", "networks", "metrics",
}

// Product catch phrase components, pre-capitalized.
var phraseAdjectives = []string{
	"Ergonomic", "Sleek", "Rustic", "Intelligent", "Durable",
	"Compact", "Refined", "Lightweight", "Practical", "Handcrafted",
	"Modular", "Incredible", "Versatile", "Premium", "Enhanced",
}

var phraseDescriptors = []string{
	"Steel", "Wooden", "Cotton", "Granite", "Leather",
	"Ceramic", "Carbon", "Linen", "Copper", "Bamboo",
	"Marble", "Aluminum", "Wool", "Glass", "Titanium",
}

var phraseNouns = []string{
	"Chair", "Lamp", "Keyboard", "Bottle", "Backpack",
	"Speaker", "Notebook", "Wallet", "Headset", "Clock",
	"Desk", "Kettle", "Charger", "Tumbler", "Organizer",
}

// City names.
var cityNames = []string{
	"Fairview", "Riverton", "Oakdale", "Lakeside", "Brookfield",
	"Ashland", "Milford", "Kingsport", "Greenville", "Clayton",
	"Bristol", "Dayton", "Florence", "Georgetown", "Hudson",
	"Jackson", "Lebanon", "Madison", "Newport", "Oxford",
	"Salem", "Troy", "Union", "Vernon", "Winchester",
}

// Two-letter state abbreviations.
var stateAbbrs = []string{
	"AL", "AZ", "CA", "CO", "FL", "GA", "IL", "IN", "MA", "MD",
	"MI", "MN", "MO", "NC", "NJ", "NV", "NY", "OH", "OR", "PA",
	"TN", "TX", "UT", "VA", "WA", "WI",
}

// ISO 3166-1 alpha-2 country codes.
var countryCodes = []string{
	"US", "CA", "GB", "DE", "FR", "ES", "IT", "NL", "SE", "NO",
	"AU", "NZ", "JP", "KR", "SG", "BR", "MX", "IN", "ZA", "IE",
}
