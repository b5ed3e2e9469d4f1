// internal/service/analysis/network.go

package analysis

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"clipsight/internal/domain/analysis"
)

// followListPaths are the known follower/following envelopes, in priority order.
var followListPaths = []string{"data.userList", "userList", "data.followers", "followers", "data.user_list"}

// AnalyzeFollowerNetwork describes the shape of the creator's network from
// their profile counts, falling back to list lengths when the profile
// omits them.
func AnalyzeFollowerNetwork(creatorInfo, followers, followings json.RawMessage) analysis.FollowerNetworkInsight {
	if len(creatorInfo) == 0 && len(followers) == 0 && len(followings) == 0 {
		return analysis.FollowerNetworkInsight{
			Available: false,
			Reason:    "Creator network data unavailable",
		}
	}

	v := gjson.ParseBytes(creatorInfo)
	followerCount, haveFollowers := firstNumber(v, followerCountPaths...)
	followingCount, haveFollowing := firstNumber(v, followingCountPaths...)

	if !haveFollowers {
		if list := extractList(followers, followListPaths...); len(list) > 0 {
			followerCount = float64(len(list))
			haveFollowers = true
		}
	}
	if !haveFollowing {
		if list := extractList(followings, followListPaths...); len(list) > 0 {
			followingCount = float64(len(list))
			haveFollowing = true
		}
	}

	if !haveFollowers {
		return analysis.FollowerNetworkInsight{
			Available: false,
			Reason:    "Follower counts are hidden for this account",
		}
	}

	ratio := followerCount
	if followingCount > 0 {
		ratio = followerCount / followingCount
	}

	return analysis.FollowerNetworkInsight{
		Available:      true,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		Ratio:          ratio,
		NetworkShape:   networkShape(ratio),
	}
}

// networkShape buckets the follower-to-following ratio.
func networkShape(ratio float64) string {
	switch {
	case ratio > 100:
		return "Broadcast - audience far exceeds following"
	case ratio > 10:
		return "Influencer dynamics"
	case ratio > 1:
		return "Balanced network"
	default:
		return "Discovery mode - follows more than followed"
	}
}
