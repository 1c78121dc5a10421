package entity

// Mission is one entry of the mission board.
type Mission struct {
	ID       int64
	Title    string
	Body     string
	Score    int
	Special  bool
	Verified bool
}

// Ranking is a weekly contribution rank/score pair.
type Ranking struct {
	Rank  int
	Score int
}

// MissionBoard is the mission tab payload: the district's weekly ranking, the
// user's own ranking, and the mission list.
type MissionBoard struct {
	Gugun    string
	Region   Ranking
	Me       Ranking
	Missions []Mission
}
