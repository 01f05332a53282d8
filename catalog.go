package main

// ProfileCatalog is the read-only set of candidate profiles. The seed set is
// fixed at construction; ListAll returns it in the same order on every call
// so downstream exclusion filtering stays deterministic.
type ProfileCatalog struct {
	profiles []Profile
}

func NewProfileCatalog() *ProfileCatalog {
	return &ProfileCatalog{profiles: seedProfiles()}
}

// ListAll returns every profile in stable seed order. The result is a copy;
// callers can mutate it without touching the catalog.
func (c *ProfileCatalog) ListAll() []Profile {
	out := make([]Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		out = append(out, p.clone())
	}
	return out
}

// Get returns the profile with the given id.
func (c *ProfileCatalog) Get(id string) (Profile, bool) {
	for _, p := range c.profiles {
		if p.ID == id {
			return p.clone(), true
		}
	}
	return Profile{}, false
}

func seedProfiles() []Profile {
	return []Profile{
		{
			ID: "p1", Name: "María", Age: 24,
			Bio:       "Coffee addict and cat person",
			Photo:     "https://randomuser.me/api/portraits/women/10.jpg",
			Interests: []string{"Travel", "Photography", "Coffee"},
			Distance:  2,
		},
		{
			ID: "p2", Name: "Laura", Age: 26,
			Bio:       "Professional dancer",
			Photo:     "https://randomuser.me/api/portraits/women/20.jpg",
			Interests: []string{"Dance", "Music", "Fitness"},
			Distance:  5,
		},
		{
			ID: "p3", Name: "Sofía", Age: 23,
			Bio:       "Adventurer and nature lover",
			Photo:     "https://randomuser.me/api/portraits/women/30.jpg",
			Interests: []string{"Hiking", "Camping", "Yoga"},
			Distance:  3,
		},
		{
			ID: "p4", Name: "Valentina", Age: 27,
			Bio:       "Chef and passionate foodie",
			Photo:     "https://randomuser.me/api/portraits/women/40.jpg",
			Interests: []string{"Cooking", "Wine", "Restaurants"},
			Distance:  4,
		},
		{
			ID: "p5", Name: "Isabella", Age: 25,
			Bio:       "Graphic designer and artist",
			Photo:     "https://randomuser.me/api/portraits/women/50.jpg",
			Interests: []string{"Art", "Design", "Cinema"},
			Distance:  1,
		},
		{
			ID: "p6", Name: "Camila", Age: 22,
			Bio:       "Medical student and avid reader",
			Photo:     "https://randomuser.me/api/portraits/women/60.jpg",
			Interests: []string{"Reading", "Science", "Music"},
			Distance:  6,
		},
		{
			ID: "p7", Name: "Daniela", Age: 28,
			Bio:       "Engineer and gamer",
			Photo:     "https://randomuser.me/api/portraits/women/70.jpg",
			Interests: []string{"Gaming", "Technology", "Anime"},
			Distance:  7,
		},
		{
			ID: "p8", Name: "Andrea", Age: 24,
			Bio:       "Travel photographer",
			Photo:     "https://randomuser.me/api/portraits/women/80.jpg",
			Interests: []string{"Travel", "Photography", "Adventure"},
			Distance:  8,
		},
	}
}
