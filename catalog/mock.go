package catalog

import (
	"strings"

	"github.com/Conceptual-Machines/moodtunes-agents-go/models"
	"github.com/Conceptual-Machines/moodtunes-agents-go/mood"
)

// Mock IDs carry this prefix so they can never collide with real Spotify
// track IDs, and so playlist creation can filter them out.
const mockIDPrefix = "mock-"

// IsMockID reports whether a track ID belongs to a curated fallback track.
func IsMockID(id string) bool {
	return strings.HasPrefix(id, mockIDPrefix)
}

// mockBankAliases folds related emotions onto the six curated banks.
var mockBankAliases = map[string]string{
	"happy":     "happy",
	"excited":   "happy",
	"confident": "happy",
	"cheerful":  "happy",

	"sad":         "sad",
	"melancholic": "sad",
	"depressed":   "sad",
	"gloomy":      "sad",

	"angry":      "angry",
	"irritated":  "angry",
	"annoyed":    "angry",
	"frustrated": "angry",

	"calm":     "calm",
	"relaxed":  "calm",
	"peaceful": "calm",
	"serene":   "calm",

	"energetic": "energetic",
	"lively":    "energetic",
	"dynamic":   "energetic",
	"vigorous":  "energetic",

	"neutral":     "neutral",
	"balanced":    "neutral",
	"indifferent": "neutral",
}

var mockTracksByBank = map[string][]models.Track{
	"happy": {
		{
			ID:          "mock-happy-1",
			Name:        "Happy",
			Artist:      "Pharrell Williams",
			Album:       "G I R L",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e8107e6d9214baa81bb79bba",
			ExternalURL: "https://open.spotify.com/track/60nZcImufyMA1MKQY3dcCH",
		},
		{
			ID:          "mock-happy-2",
			Name:        "Can't Stop the Feeling!",
			Artist:      "Justin Timberlake",
			Album:       "Trolls (Original Motion Picture Soundtrack)",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b2738376f28c2dbd34213c0e6882",
			ExternalURL: "https://open.spotify.com/track/1WkMMavIMc4JZ8cfMmxHkI",
		},
		{
			ID:          "mock-happy-3",
			Name:        "Walking on Sunshine",
			Artist:      "Katrina & The Waves",
			Album:       "Katrina & The Waves",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b2736b048063ef3329ea7bbfd7f2",
			ExternalURL: "https://open.spotify.com/track/05wIrZSwuaVWhcv5FfqeH0",
		},
		{
			ID:          "mock-happy-4",
			Name:        "Good as Hell",
			Artist:      "Lizzo",
			Album:       "Cuz I Love You",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e33c30e28365085952eb1128",
			ExternalURL: "https://open.spotify.com/track/3Yh9lZcWyKrK9GjbhuS0hT",
		},
		{
			ID:          "mock-happy-5",
			Name:        "Uptown Funk",
			Artist:      "Mark Ronson ft. Bruno Mars",
			Album:       "Uptown Special",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e619b5476383889dbba224b8",
			ExternalURL: "https://open.spotify.com/track/32OlwWuMpZ6b0aN2RZOeMS",
		},
	},
	"sad": {
		{
			ID:          "mock-sad-1",
			Name:        "Someone Like You",
			Artist:      "Adele",
			Album:       "21",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b2732118bf9b198b05a95ded6300",
			ExternalURL: "https://open.spotify.com/track/4kflIGfjdZJW4ot2ioixTB",
		},
		{
			ID:          "mock-sad-2",
			Name:        "Fix You",
			Artist:      "Coldplay",
			Album:       "X&Y",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273de0cd11d7b31c3bd1fd5983d",
			ExternalURL: "https://open.spotify.com/track/7LVHVU3tWfcxj5aiPFEW4Q",
		},
		{
			ID:          "mock-sad-3",
			Name:        "Hello",
			Artist:      "Adele",
			Album:       "25",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e35b473c6846336b96a35925",
			ExternalURL: "https://open.spotify.com/track/4sPmO7WMQUAf45kwMOtONw",
		},
		{
			ID:          "mock-sad-4",
			Name:        "Skinny Love",
			Artist:      "Bon Iver",
			Album:       "For Emma, Forever Ago",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e207c89effe1730fdf577932",
			ExternalURL: "https://open.spotify.com/track/0BhuO4S1yzHb417yTWKQT2",
		},
		{
			ID:          "mock-sad-5",
			Name:        "Tears in Heaven",
			Artist:      "Eric Clapton",
			Album:       "Rush (Music from the Motion Picture Soundtrack)",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273f5a00bdcd8bda92d9c1b6ca5",
			ExternalURL: "https://open.spotify.com/track/612VcBshQcy4mpB2utGc3H",
		},
	},
	"angry": {
		{
			ID:          "mock-angry-1",
			Name:        "Break Stuff",
			Artist:      "Limp Bizkit",
			Album:       "Significant Other",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273c04a1f4026c5d629b6a0c710",
			ExternalURL: "https://open.spotify.com/track/5cZqsjJuSxcmlgcktjaLNO",
		},
		{
			ID:          "mock-angry-2",
			Name:        "Killing In The Name",
			Artist:      "Rage Against The Machine",
			Album:       "Rage Against The Machine",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273c8a11e48c91a982d086afc69",
			ExternalURL: "https://open.spotify.com/track/59WN2psjkt1tyaxjspN8fp",
		},
		{
			ID:          "mock-angry-3",
			Name:        "Bulls On Parade",
			Artist:      "Rage Against The Machine",
			Album:       "Evil Empire",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e3e3b64cea45265469d4cafa",
			ExternalURL: "https://open.spotify.com/track/1aVgyDQukYk0LUJOKvGdQh",
		},
		{
			ID:          "mock-angry-4",
			Name:        "Last Resort",
			Artist:      "Papa Roach",
			Album:       "Infest",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b2736f7be9181d779e0e8c34f63a",
			ExternalURL: "https://open.spotify.com/track/0o7g4apWcIvt8VhYRGYjgd",
		},
		{
			ID:          "mock-angry-5",
			Name:        "Given Up",
			Artist:      "Linkin Park",
			Album:       "Minutes to Midnight",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273ded4afdd6b3a2f8fc57e8bd0",
			ExternalURL: "https://open.spotify.com/track/3qL6pIUVoYieuaHZJZfN4p",
		},
	},
	"calm": {
		{
			ID:          "mock-calm-1",
			Name:        "Weightless",
			Artist:      "Marconi Union",
			Album:       "Weightless",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e3424f7da9bffd6c6cdec1e4",
			ExternalURL: "https://open.spotify.com/track/4HI45IKz6DPq96I9P30utl",
		},
		{
			ID:          "mock-calm-2",
			Name:        "Clair de Lune",
			Artist:      "Claude Debussy",
			Album:       "Relaxing Classical",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273ca1ab9bafa3af8ef32cf8810",
			ExternalURL: "https://open.spotify.com/track/4OdS71RDlgxK6KSzQgEANJ",
		},
		{
			ID:          "mock-calm-3",
			Name:        "Experience",
			Artist:      "Ludovico Einaudi",
			Album:       "In A Time Lapse",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b27308f6df33eac677f0a8ee2258",
			ExternalURL: "https://open.spotify.com/track/1BncfTJAWxrsxyT9culBrj",
		},
		{
			ID:          "mock-calm-4",
			Name:        "Gymnopedie No. 1",
			Artist:      "Erik Satie",
			Album:       "Gymnopédies",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273728de04c4280f421c5afdda6",
			ExternalURL: "https://open.spotify.com/track/1I6oT797UrjUDdkuzOAIR3",
		},
		{
			ID:          "mock-calm-5",
			Name:        "Intro",
			Artist:      "The xx",
			Album:       "xx",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273be5b4ddd5806ea63f8aa3ef4",
			ExternalURL: "https://open.spotify.com/track/0fDG6v4QBGYpK7cFICQuis",
		},
	},
	"energetic": {
		{
			ID:          "mock-energetic-1",
			Name:        "Eye of the Tiger",
			Artist:      "Survivor",
			Album:       "Eye of the Tiger",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e8ddd32c41af1025272222c7",
			ExternalURL: "https://open.spotify.com/track/2KH16WveTQWT6KOG9Rg6e2",
		},
		{
			ID:          "mock-energetic-2",
			Name:        "Can't Hold Us",
			Artist:      "Macklemore & Ryan Lewis",
			Album:       "The Heist",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273883106c45e2e5e1d5186caa5",
			ExternalURL: "https://open.spotify.com/track/3bidbhpOYeV4knp8AIu8Xn",
		},
		{
			ID:          "mock-energetic-3",
			Name:        "Wake Me Up",
			Artist:      "Avicii",
			Album:       "True",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273c31d4b0853f7f5a23b38e2dd",
			ExternalURL: "https://open.spotify.com/track/0nJW01T7XtvILxQgC5J7Wh",
		},
		{
			ID:          "mock-energetic-4",
			Name:        "Stronger",
			Artist:      "Kanye West",
			Album:       "Graduation",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e3f3de66770be1b3ded47056",
			ExternalURL: "https://open.spotify.com/track/4fzsfWzRhPawzqhX8Qt9F3",
		},
		{
			ID:          "mock-energetic-5",
			Name:        "All I Do Is Win",
			Artist:      "DJ Khaled",
			Album:       "Victory",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273942a0c9ac8f7ab8a5ab9a101",
			ExternalURL: "https://open.spotify.com/track/3Y3pdzh1g2R63LKWIBNblr",
		},
	},
	"neutral": {
		{
			ID:          "mock-neutral-1",
			Name:        "Here Comes the Sun",
			Artist:      "The Beatles",
			Album:       "Abbey Road",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273dc30583ba717007b00cceb25",
			ExternalURL: "https://open.spotify.com/track/6dGnYIeXmHdcikdzNNDMm2",
		},
		{
			ID:          "mock-neutral-2",
			Name:        "Dreams",
			Artist:      "Fleetwood Mac",
			Album:       "Rumours",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b273e52a59a28efa4773dd2bfe1b",
			ExternalURL: "https://open.spotify.com/track/0ofHAoxe9vBkTCp2UQIavz",
		},
		{
			ID:          "mock-neutral-3",
			Name:        "Africa",
			Artist:      "TOTO",
			Album:       "Toto IV",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b2735752919c33697c001c8db419",
			ExternalURL: "https://open.spotify.com/track/2374M0fQpWi3dLnB54qaLX",
		},
		{
			ID:          "mock-neutral-4",
			Name:        "Hotel California",
			Artist:      "Eagles",
			Album:       "Hotel California",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b2738eaff1cf7982f95328028a4d",
			ExternalURL: "https://open.spotify.com/track/40riOy7x9W7GXjyGp4pjAv",
		},
		{
			ID:          "mock-neutral-5",
			Name:        "Imagine",
			Artist:      "John Lennon",
			Album:       "Imagine",
			ImageURL:    "https://i.scdn.co/image/ab67616d0000b2733c19c30050330476c61aea37",
			ExternalURL: "https://open.spotify.com/track/7pKfPomDEeI4TPT6EOYjn9",
		},
	},
}

// MockTracksFor returns a copy of the curated fallback bank for an emotion.
// Unmapped emotions use the neutral bank.
func MockTracksFor(emotion string) []models.Track {
	bank, ok := mockBankAliases[strings.ToLower(emotion)]
	if !ok {
		bank = "neutral"
	}
	tracks := mockTracksByBank[bank]
	out := make([]models.Track, len(tracks))
	copy(out, tracks)
	return out
}

// padWithMocks extends tracks to exactly limit entries from the emotion's
// mock bank, skipping mocks whose name duplicates a collected track. When
// the bank runs out the entries cycle, so the length contract holds.
func padWithMocks(tracks []models.Track, emotion string, limit int) []models.Track {
	bank := MockTracksFor(emotion)

	names := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		names[t.Name] = true
	}
	for _, mock := range bank {
		if len(tracks) >= limit {
			return tracks
		}
		if names[mock.Name] {
			continue
		}
		names[mock.Name] = true
		tracks = append(tracks, mock)
	}
	for i := 0; len(tracks) < limit; i++ {
		tracks = append(tracks, bank[i%len(bank)])
	}
	return tracks
}

// FallbackRecommendation serves an all-mock result of exactly limit
// tracks, for callers that have no Spotify client at all.
func FallbackRecommendation(emotion string, limit int) models.Recommendation {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return models.Recommendation{
		Tracks:   padWithMocks(nil, mood.Normalize(emotion), limit),
		Degraded: true,
		Reason:   "spotify unavailable, serving curated fallback tracks",
	}
}
