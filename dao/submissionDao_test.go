package dao

import (
	"HappyEducation/common"
	"HappyEducation/model"
	"testing"
	"time"
)

func makeMcProblem(t *testing.T, code string) *ProblemDao {
	pd := &ProblemDao{Problem: &Problem{
		Code:       code,
		Title:      "选择题",
		AnswerType: model.ANSWER_TYPE_MC,
		IsPublic:   true,
		AuthorIDs:  []int64{1},
	}}
	if err := pd.Create(); err != nil {
		t.Fatal("创建题目失败:", err)
	}
	ans := []Answer{
		{Description: "对的", IsCorrect: true},
		{Description: "错的一"},
		{Description: "错的二"},
	}
	if err := ReplaceAnswers(pd.GetID(), ans); err != nil {
		t.Fatal("录入选项失败:", err)
	}
	return pd
}

//同一个种子推出的排列里找正确选项的标号
func correctLabel(t *testing.T, pid, seed int64) string {
	for i := 0; i < 3; i++ {
		label := common.LabelOf(i)
		if a := GetAnswerByLabel(pid, ProblemSeed(seed, pid), label); a != nil && a.IsCorrect {
			return label
		}
	}
	t.Fatal("找不到正确选项的标号")
	return ""
}

func TestSubmitAnswersJudgeOnce(t *testing.T) {
	setupStore(t)
	now := time.Now()
	cd := makeTestContest(t, "c-submit", now.Add(-24*time.Hour), now.Add(24*time.Hour))
	pd := makeMcProblem(t, "mc-1")
	if err := AddContestProblems(cd.GetID(), []ContestProblem{
		{ProblemID: pd.GetID(), Order: 0, Points: 100},
	}); err != nil {
		t.Fatal("挂题失败:", err)
	}
	ud := makeTestUser(t, "solver")
	p, err := JoinContest(cd, ud, "")
	if err != nil || !p.IsLive() {
		t.Fatal("加入失败:", err)
	}
	sub, err := GetOrCreateSubmission(p)
	if err != nil {
		t.Fatal("取卷失败:", err)
	}

	cp := GetContestProblems(cd.GetID())[0]
	label := correctLabel(t, pd.GetID(), sub.ShuffleSeed)
	if err := SubmitAnswers(cd.Contest, p, sub, map[int64]string{cp.ID: label}); err != nil {
		t.Fatal("评判失败:", err)
	}
	if sub.Result != model.RESULT_AC || p.Score != 100 {
		t.Fatal("评判结果错误:", sub.Result, p.Score)
	}

	//再次提交必须被拒绝, 且原答卷和成绩原封不动
	if err := SubmitAnswers(cd.Contest, p, sub, map[int64]string{cp.ID: label}); err != ErrDuplicateSubmission {
		t.Fatal("重复提交应被拒绝:", err)
	}
	again := GetSubmission(sub.ID)
	if again == nil || again.Result != model.RESULT_AC || again.ShuffleSeed != sub.ShuffleSeed {
		t.Fatal("原答卷被改动:", again)
	}
	if cnt, _ := engine.Where("submission_id = ?", sub.ID).Count(&SubmissionProblem{}); cnt != 1 {
		t.Fatal("作答记录应只有一条, 得到", cnt)
	}
}

func TestSubmissionUniquePerParticipation(t *testing.T) {
	setupStore(t)
	now := time.Now()
	cd := makeTestContest(t, "c-seed", now.Add(-24*time.Hour), now.Add(24*time.Hour))
	ud := makeTestUser(t, "racer")
	p, err := JoinContest(cd, ud, "")
	if err != nil {
		t.Fatal("加入失败:", err)
	}
	sub, err := GetOrCreateSubmission(p)
	if err != nil {
		t.Fatal("取卷失败:", err)
	}

	//并发取卷时第二份答卷必须撞唯一索引, 种子不会分叉
	dup := &Submission{
		ParticipationID: p.ID,
		ContestID:       p.ContestID,
		UserID:          p.UserID,
		Result:          model.RESULT_PENDING,
		ShuffleSeed:     sub.ShuffleSeed + 1,
	}
	if _, err := engine.InsertOne(dup); err == nil {
		t.Fatal("同一次参与不允许第二份答卷")
	}
	again, err := GetOrCreateSubmission(p)
	if err != nil || again.ID != sub.ID || again.ShuffleSeed != sub.ShuffleSeed {
		t.Fatal("应返回原答卷和原种子:", err, again)
	}
}
