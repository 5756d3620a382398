// Package mood owns the canonical emotion tables: audio features, search
// keywords, genre lists, the weather-condition mapping, and classifier
// aliases. Every consumer reads them through the accessors here; there is no
// second copy anywhere in the tree.
package mood

import (
	"sort"
	"strings"
)

// Features are the target audio features for one emotion.
type Features struct {
	Valence      float64
	Energy       float64
	Danceability float64
	Tempo        int
}

var featuresByEmotion = map[string]Features{
	"happy":         {Valence: 0.8, Energy: 0.8, Danceability: 0.7, Tempo: 120},
	"sad":           {Valence: 0.2, Energy: 0.3, Danceability: 0.4, Tempo: 80},
	"angry":         {Valence: 0.3, Energy: 0.9, Danceability: 0.5, Tempo: 140},
	"calm":          {Valence: 0.6, Energy: 0.3, Danceability: 0.4, Tempo: 90},
	"excited":       {Valence: 0.8, Energy: 0.9, Danceability: 0.8, Tempo: 130},
	"anxious":       {Valence: 0.4, Energy: 0.7, Danceability: 0.5, Tempo: 110},
	"peaceful":      {Valence: 0.7, Energy: 0.2, Danceability: 0.3, Tempo: 70},
	"energetic":     {Valence: 0.7, Energy: 0.9, Danceability: 0.8, Tempo: 125},
	"melancholic":   {Valence: 0.3, Energy: 0.4, Danceability: 0.3, Tempo: 85},
	"reflective":    {Valence: 0.5, Energy: 0.3, Danceability: 0.3, Tempo: 95},
	"intense":       {Valence: 0.4, Energy: 0.8, Danceability: 0.6, Tempo: 135},
	"thoughtful":    {Valence: 0.5, Energy: 0.4, Danceability: 0.4, Tempo: 100},
	"mysterious":    {Valence: 0.4, Energy: 0.5, Danceability: 0.5, Tempo: 105},
	"dreamy":        {Valence: 0.6, Energy: 0.4, Danceability: 0.5, Tempo: 95},
	"introspective": {Valence: 0.5, Energy: 0.3, Danceability: 0.3, Tempo: 90},
	"irritated":     {Valence: 0.3, Energy: 0.7, Danceability: 0.5, Tempo: 115},
	"turbulent":     {Valence: 0.3, Energy: 0.8, Danceability: 0.6, Tempo: 130},
	"fearful":       {Valence: 0.2, Energy: 0.6, Danceability: 0.4, Tempo: 100},
	"neutral":       {Valence: 0.5, Energy: 0.5, Danceability: 0.5, Tempo: 100},
}

// Search synonyms per emotion. Nine per row so shuffled query building has
// enough variety to avoid near-identical titles.
var keywordsByEmotion = map[string][]string{
	"happy":     {"joyful", "cheerful", "uplifting", "sunshine", "blissful", "happy", "upbeat", "feel good", "positive"},
	"sad":       {"melancholy", "blue", "heartbroken", "somber", "downcast", "sad", "emotional", "heartache", "gloomy"},
	"angry":     {"furious", "rage", "intense", "aggressive", "fierce", "angry", "powerful", "rebellious", "frustration"},
	"calm":      {"peaceful", "tranquil", "serene", "gentle", "soothing", "calm", "relaxed", "meditative", "chill"},
	"energetic": {"lively", "dynamic", "vibrant", "spirited", "energizing", "energetic", "bouncy", "upbeat", "workout"},
	"anxious":   {"tense", "nervous", "worried", "uneasy", "restless", "anxious", "apprehensive", "edgy", "dramatic"},
	"relaxed":   {"mellow", "laid-back", "easygoing", "comfortable", "cozy", "relaxed", "chill", "easy listening", "smooth"},
	"nostalgic": {"reminiscent", "retro", "vintage", "throwback", "memory", "nostalgic", "classic", "oldies", "timeless"},
	"romantic":  {"love", "affectionate", "passionate", "dreamy", "tender", "romantic", "intimate", "sensual", "loving"},
	"confident": {"empowered", "strong", "bold", "fearless", "assured", "confident", "pride", "powerful", "motivational"},
	"fearful":   {"scared", "frightened", "eerie", "haunting", "suspenseful", "fearful", "ominous", "spooky", "creepy"},
	"surprised": {"astonished", "unexpected", "amazed", "shocked", "stunned", "surprising", "quirky", "unusual", "wonder"},
	"neutral":   {"balanced", "moderate", "middle", "standard", "regular", "neutral", "ordinary", "casual", "everyday"},
	"stressed":  {"pressured", "overwhelmed", "tense", "frantic", "rushed", "stressed", "urgent", "hectic", "chaotic"},
}

var genresByEmotion = map[string][]string{
	"happy":     {"pop", "dance", "disco", "funk", "electronic"},
	"sad":       {"indie", "folk", "blues", "soul", "alternative"},
	"angry":     {"rock", "metal", "punk", "hardcore", "grunge"},
	"calm":      {"ambient", "classical", "acoustic", "piano", "instrumental"},
	"energetic": {"dance", "electronic", "house", "techno", "edm"},
	"anxious":   {"alternative", "rock", "electronic", "experimental", "indie"},
	"relaxed":   {"chill", "lofi", "acoustic", "ambient", "jazz"},
	"nostalgic": {"oldies", "80s", "70s", "classic rock", "retro"},
	"romantic":  {"r&b", "soul", "jazz", "pop", "acoustic"},
	"confident": {"hip-hop", "pop", "dance", "rock", "r&b"},
	"fearful":   {"soundtrack", "experimental", "ambient", "classical", "instrumental"},
	"surprised": {"electronic", "indie", "experimental", "alternative", "fusion"},
	"neutral":   {"pop", "rock", "indie", "alternative", "mainstream"},
	"stressed":  {"ambient", "classical", "instrumental", "meditation", "piano"},
}

// Keys are the exact `weather[0].main` strings OpenWeatherMap reports.
var weatherEmotion = map[string]string{
	"Clear":         "happy",
	"Sunny":         "energetic",
	"Clouds":        "calm",
	"Partly Cloudy": "thoughtful",
	"Overcast":      "melancholic",
	"Rain":          "sad",
	"Drizzle":       "reflective",
	"Thunderstorm":  "intense",
	"Snow":          "peaceful",
	"Mist":          "mysterious",
	"Fog":           "introspective",
	"Haze":          "dreamy",
	"Dust":          "irritated",
	"Smoke":         "anxious",
	"Tornado":       "fearful",
	"Hurricane":     "turbulent",
}

// Classifier replies come back as nouns as often as adjectives.
var aliases = map[string]string{
	"happiness": "happy",
	"joy":       "happy",
	"sadness":   "sad",
	"sorrow":    "sad",
	"anger":     "angry",
	"rage":      "angry",
	"fear":      "afraid",
	"terror":    "afraid",
	"surprise":  "surprised",
	"amazement": "surprised",
	"disgust":   "disgusted",
}

// FeaturesFor returns the audio-feature targets for an emotion. Unknown
// emotions get the neutral row.
func FeaturesFor(emotion string) Features {
	if f, ok := featuresByEmotion[strings.ToLower(emotion)]; ok {
		return f
	}
	return featuresByEmotion["neutral"]
}

// KeywordsFor returns a copy of the search synonyms for an emotion. An
// unmapped emotion yields the emotion itself so a search can still run.
func KeywordsFor(emotion string) []string {
	key := strings.ToLower(emotion)
	if kw, ok := keywordsByEmotion[key]; ok {
		out := make([]string, len(kw))
		copy(out, kw)
		return out
	}
	return []string{key}
}

// GenresFor returns a copy of the genre list for an emotion, with a generic
// default for unmapped emotions.
func GenresFor(emotion string) []string {
	if g, ok := genresByEmotion[strings.ToLower(emotion)]; ok {
		out := make([]string, len(g))
		copy(out, g)
		return out
	}
	return []string{"pop", "rock", "indie"}
}

// EmotionForWeather maps a weather condition to an emotion. Pure table
// lookup; anything unrecognized (including "Unknown") is neutral.
func EmotionForWeather(condition string) string {
	if e, ok := weatherEmotion[condition]; ok {
		return e
	}
	return "neutral"
}

// Normalize lowercases and trims a classifier reply and rewrites known
// aliases onto the canonical vocabulary.
func Normalize(raw string) string {
	e := strings.ToLower(strings.TrimSpace(raw))
	e = strings.TrimRight(e, ".!?")
	if canonical, ok := aliases[e]; ok {
		return canonical
	}
	return e
}

// Emotions returns the canonical emotion vocabulary in sorted order.
func Emotions() []string {
	out := make([]string, 0, len(featuresByEmotion))
	for e := range featuresByEmotion {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
