package models

// MediaItem is a movie or TV entry as returned by TMDB list endpoints.
// Movies carry Title/ReleaseDate, TV shows carry Name/FirstAirDate.
// MediaType is not reliably supplied by the list endpoints and is tagged
// by the catalog layer after each fetch.
type MediaItem struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	Overview     string  `json:"overview,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	MediaType    string  `json:"media_type,omitempty"`
}

// MediaListResponse is the paged envelope shared by the popular, search,
// discover and similar endpoints.
type MediaListResponse struct {
	Page         int         `json:"page"`
	Results      []MediaItem `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// Detail is the full record for a single movie or TV show.
type Detail struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title,omitempty"`
	Name                string              `json:"name,omitempty"`
	PosterPath          string              `json:"poster_path,omitempty"`
	BackdropPath        string              `json:"backdrop_path,omitempty"`
	Overview            string              `json:"overview,omitempty"`
	VoteAverage         float64             `json:"vote_average"`
	ReleaseDate         string              `json:"release_date,omitempty"`
	FirstAirDate        string              `json:"first_air_date,omitempty"`
	Runtime             int                 `json:"runtime,omitempty"`
	EpisodeRunTime      []int               `json:"episode_run_time,omitempty"`
	Genres              []Genre             `json:"genres,omitempty"`
	Status              string              `json:"status,omitempty"`
	Budget              int64               `json:"budget,omitempty"`
	Tagline             string              `json:"tagline,omitempty"`
	OriginalLanguage    string              `json:"original_language,omitempty"`
	ProductionCountries []ProductionCountry `json:"production_countries,omitempty"`
}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCountry is a production country on a detail record.
type ProductionCountry struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

// Credits holds the cast and crew for a title.
type Credits struct {
	Cast []Cast `json:"cast"`
	Crew []Crew `json:"crew"`
}

// Cast is a single cast member.
type Cast struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path,omitempty"`
	Character   string `json:"character,omitempty"`
}

// Crew is a single crew member.
type Crew struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Person is a person biography record.
type Person struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Biography          string   `json:"biography,omitempty"`
	PlaceOfBirth       string   `json:"place_of_birth,omitempty"`
	Birthday           string   `json:"birthday,omitempty"`
	KnownForDepartment string   `json:"known_for_department,omitempty"`
	ProfilePath        string   `json:"profile_path,omitempty"`
	Gender             int      `json:"gender,omitempty"`
	AlsoKnownAs        []string `json:"also_known_as,omitempty"`
	IMDBId             string   `json:"imdb_id,omitempty"`
	Homepage           string   `json:"homepage,omitempty"`
}

// PersonCredit is one entry of a person's combined credits.
type PersonCredit struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	Character    string  `json:"character,omitempty"`
	MediaType    string  `json:"media_type,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
}

// PersonCreditsResponse is the combined_credits envelope.
type PersonCreditsResponse struct {
	Cast []PersonCredit `json:"cast"`
}

// Video is a trailer/teaser candidate; used transiently to pick a trailer key.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoListResponse is the videos endpoint envelope.
type VideoListResponse struct {
	Results []Video `json:"results"`
}

const (
	TMDBImageBaseW500 = "https://image.tmdb.org/t/p/w500"
	TMDBImageBaseW780 = "https://image.tmdb.org/t/p/w780"
)

// PosterURL builds the full poster image URL. An empty relative path means
// no image should be requested.
func PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return TMDBImageBaseW500 + path
}

// BackdropURL builds the full backdrop image URL.
func BackdropURL(path string) string {
	if path == "" {
		return ""
	}
	return TMDBImageBaseW780 + path
}

// ProfileURL builds the full profile image URL for people.
func ProfileURL(path string) string {
	if path == "" {
		return ""
	}
	return TMDBImageBaseW500 + path
}
