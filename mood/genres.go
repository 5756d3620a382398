package mood

import "strings"

// maxSeedGenres is the Spotify recommendation seed limit.
const maxSeedGenres = 5

// The seed genres the recommendation endpoint actually accepts. Anything
// outside this list is silently ignored by the API, so we filter up front.
var validGenres = map[string]struct{}{}

var validGenreList = []string{
	"acoustic", "afrobeat", "alt-rock", "alternative", "ambient", "anime",
	"black-metal", "bluegrass", "blues", "bossanova", "brazil", "breakbeat",
	"british", "cantopop", "chicago-house", "children", "chill", "classical",
	"club", "comedy", "country", "dance", "dancehall", "death-metal", "deep-house",
	"detroit-techno", "disco", "disney", "drum-and-bass", "dub", "dubstep",
	"edm", "electro", "electronic", "emo", "folk", "forro", "french", "funk",
	"garage", "german", "gospel", "goth", "grindcore", "groove", "grunge",
	"guitar", "happy", "hard-rock", "hardcore", "hardstyle", "heavy-metal",
	"hip-hop", "holidays", "honky-tonk", "house", "idm", "indian", "indie",
	"indie-pop", "industrial", "iranian", "j-dance", "j-idol", "j-pop", "j-rock",
	"jazz", "k-pop", "kids", "latin", "latino", "malay", "mandopop", "metal",
	"metal-misc", "metalcore", "minimal-techno", "movies", "mpb", "new-age",
	"new-release", "opera", "pagode", "party", "philippines-opm", "piano", "pop",
	"pop-film", "post-dubstep", "power-pop", "progressive-house", "psych-rock",
	"punk", "punk-rock", "r-n-b", "rainy-day", "reggae", "reggaeton", "road-trip",
	"rock", "rock-n-roll", "rockabilly", "romance", "sad", "salsa", "samba",
	"sertanejo", "show-tunes", "singer-songwriter", "ska", "sleep", "songwriter",
	"soul", "soundtracks", "spanish", "study", "summer", "swedish", "synth-pop",
	"tango", "techno", "trance", "trip-hop", "turkish", "work-out", "world-music",
}

func init() {
	for _, g := range validGenreList {
		validGenres[g] = struct{}{}
	}
}

// Bank key order matters: MatchArtistBank scans in this order, so "classic
// rock" resolves to the rock bank rather than whichever key a map walk
// happens to visit first.
var artistBankOrder = []string{
	"pop", "rock", "indie", "hip-hop", "r&b", "electronic", "dance", "metal", "classical", "jazz",
}

var artistsByGenre = map[string][]string{
	"pop":        {"Taylor Swift", "Ed Sheeran", "Ariana Grande", "Justin Bieber", "Dua Lipa"},
	"rock":       {"Imagine Dragons", "Twenty One Pilots", "Coldplay", "The Killers", "Queen"},
	"indie":      {"Arctic Monkeys", "The 1975", "Tame Impala", "Vampire Weekend", "Florence + The Machine"},
	"hip-hop":    {"Drake", "Kendrick Lamar", "Post Malone", "J. Cole", "Travis Scott"},
	"r&b":        {"The Weeknd", "SZA", "H.E.R.", "Frank Ocean", "Daniel Caesar"},
	"electronic": {"Calvin Harris", "Marshmello", "Daft Punk", "Kygo", "Avicii"},
	"dance":      {"Dua Lipa", "Lady Gaga", "Calvin Harris", "David Guetta", "Swedish House Mafia"},
	"metal":      {"Metallica", "Slipknot", "System of a Down", "Rammstein", "Iron Maiden"},
	"classical":  {"Ludovico Einaudi", "Hans Zimmer", "Max Richter", "Philip Glass", "Nils Frahm"},
	"jazz":       {"Kamasi Washington", "Robert Glasper", "Norah Jones", "Gregory Porter", "Esperanza Spalding"},
}

// IsValidGenre reports whether the recommendation API accepts g as a seed.
func IsValidGenre(g string) bool {
	_, ok := validGenres[strings.ToLower(g)]
	return ok
}

// FilterGenres keeps only valid seed genres, falls back to pop/rock when
// nothing survives, and caps the result at the seed limit.
func FilterGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if IsValidGenre(g) {
			out = append(out, strings.ToLower(g))
		}
	}
	if len(out) == 0 {
		out = []string{"pop", "rock"}
	}
	if len(out) > maxSeedGenres {
		out = out[:maxSeedGenres]
	}
	return out
}

// ArtistsForGenre returns a copy of the artist bank for a genre, pop when
// the genre has no bank of its own.
func ArtistsForGenre(genre string) []string {
	bank, ok := artistsByGenre[strings.ToLower(genre)]
	if !ok {
		bank = artistsByGenre["pop"]
	}
	out := make([]string, len(bank))
	copy(out, bank)
	return out
}

// MatchArtistBank finds the artist bank whose key appears inside genre
// ("classic rock" matches rock). Unmatched genres use the pop bank.
func MatchArtistBank(genre string) string {
	g := strings.ToLower(genre)
	for _, key := range artistBankOrder {
		if strings.Contains(g, key) {
			return key
		}
	}
	return "pop"
}
