package algorithm

import (
	"math"
	"time"

	"github.com/spf13/viper"
)

// HotScore ranks a post like reddit's "hot" listing. The vote difference
// counts logarithmically and newer posts get a linear bonus.
func HotScore(createdAt time.Time, voteDiff int64) float64 {
	st, _ := time.Parse("2006-01-02", viper.GetString("server.start_time"))

	t := createdAt.Unix() - st.Unix() // age relative to the epoch
	x := voteDiff                     // likes - dislikes

	var y int8 // direction
	if x > 0 {
		y = 1
	} else if x == 0 {
		y = 0
	} else {
		y = -1
	}

	z := math.Abs(float64(x)) // confidence
	if z == 0 {
		z = 1
	}

	return float64(y)*math.Log10(z) + float64(t)/45000.0
}
