package v1

// ListQuery filters GET /v1/pokemons.
type ListQuery struct {
	Type string `form:"type"`
}

// RankingQuery is GET /v1/stats/ranking. Stat is checked against the
// allow-list here, before anything reaches the service.
type RankingQuery struct {
	Stat  string `form:"stat"          binding:"required,oneof=hp attack defense special_attack special_defense speed"`
	Limit int    `form:"limit,default=10" binding:"min=1,max=1000"`
}
