package dao

import (
	"HappyEducation/model"
	"context"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"testing"
	"time"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal("启动miniredis失败:", err)
	}
	t.Cleanup(mr.Close)
	rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx = context.TODO()
	return mr
}

func TestObjRedisRoundTrip(t *testing.T) {
	setupRedis(t)

	p := &ContestParticipation{
		ID:            7,
		ContestID:     3,
		UserID:        42,
		Virtual:       model.LIVE,
		Score:         250,
		Cumtime:       1800,
		Tiebreaker:    0.5,
		ProblemStatus: map[string]uint{"10": 100, "11": 150},
	}
	if err := putObjToRedis("test_participation_7", p, time.Hour); err != nil {
		t.Fatal("写入redis失败:", err)
	}

	got := &ContestParticipation{}
	if err := GetObjFromRedis("test_participation_7", got); err != nil {
		t.Fatal("读取redis失败:", err)
	}
	if got.Score != p.Score || got.Cumtime != p.Cumtime || got.Tiebreaker != p.Tiebreaker {
		t.Fatal("成绩字段没有还原:", got)
	}
	if len(got.ProblemStatus) != 2 || got.ProblemStatus["10"] != 100 || got.ProblemStatus["11"] != 150 {
		t.Fatal("problem_status没有还原:", got.ProblemStatus)
	}
	if got.ContestID != 3 || got.UserID != 42 || got.Virtual != model.LIVE {
		t.Fatal("参与标识没有还原:", got)
	}
}

func TestLiveParticipationCache(t *testing.T) {
	setupRedis(t)
	cid := int64(3)

	//先用哨兵占住两个缓存key, 避免回源数据库
	rdb.ZAdd(ctx, getParticipationZsetKey(cid), &redis.Z{Member: "sentinel"})
	rdb.HSet(ctx, getParticipationHashKey(cid), "sentinel", "x")

	ps := []ContestParticipation{
		{ID: 1, ContestID: cid, UserID: 10, Virtual: model.LIVE, Score: 100, Cumtime: 600},
		{ID: 2, ContestID: cid, UserID: 11, Virtual: model.LIVE, Score: 300, Cumtime: 900},
		{ID: 3, ContestID: cid, UserID: 12, Virtual: model.LIVE, Score: 300, Cumtime: 300},
		{ID: 4, ContestID: cid, UserID: 13, Virtual: 2, Score: 500}, //虚拟重赛不进正式榜
	}
	for i := range ps {
		putParticipationCache(&ps[i])
	}
	rdb.ZRem(ctx, getParticipationZsetKey(cid), "sentinel")
	rdb.HDel(ctx, getParticipationHashKey(cid), "sentinel")

	got := GetLiveParticipations(cid)
	if len(got) != 3 {
		t.Fatal("正式榜应只含live参与, 得到", len(got))
	}
	if got[0].UserID != 12 || got[1].UserID != 11 || got[2].UserID != 10 {
		t.Fatal("排序错误:", got[0].UserID, got[1].UserID, got[2].UserID)
	}
	ranks := CompetitionRanks(got)
	if ranks[0] != 1 || ranks[1] != 2 || ranks[2] != 3 {
		t.Fatal("名次错误:", ranks)
	}

	if n := CountLiveParticipations(cid); n != 3 {
		t.Fatal("人数统计错误:", n)
	}
}
