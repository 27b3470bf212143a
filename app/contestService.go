package app

import (
	"HappyEducation/common"
	"HappyEducation/dao"
	"HappyEducation/model"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"time"
)

//根据key或id定位比赛, 不存在时直接报404语义的错误
func loadContest(c *gin.Context) *dao.ContestDao {
	cd := &dao.ContestDao{}
	if key := c.DefaultQuery("key", c.DefaultPostForm("key", "")); key != "" {
		cd.Key = key
	} else {
		cd.ID = common.StrToInt64(c.DefaultQuery("id", c.DefaultPostForm("id", "0")))
	}
	if cd.GetID() == 0 || !dao.Exists(cd) {
		setError(c, 404, "不存在该比赛")
		return nil
	}
	if err := dao.GetSelfAll(cd); err != nil {
		setError(c, 404, "不存在该比赛")
		return nil
	}
	return cd
}

//可见性闸门: 公开比赛放行, 私有比赛区分"看不了"和"不存在"
func checkVisibility(c *gin.Context, cd *dao.ContestDao) bool {
	contest := cd.Contest
	uid := getUserID(c)
	ud := &dao.UserDao{ID: uid}
	var orgs []int64
	isSuperAdmin := false
	if uid != 0 {
		orgs = ud.GetOrganizations()
		isSuperAdmin = ud.IsSuperAdmin()
	}
	if contest.AccessibleBy(uid, orgs, isSuperAdmin) {
		return true
	}
	//存在但无权查看, 带上隐私元信息让前端解释清楚
	setError(c, 403, "这是私有比赛, 无权查看")
	c.Set("contest", common.H{
		"key":                     contest.Key,
		"title":                   contest.Title,
		"is_private":              contest.IsPrivate,
		"is_organization_private": contest.IsOrganizationPrivate,
		"organizations":           dao.GetOrganizationNames(contest.Organizations),
	})
	return false
}

//当前用户在该比赛中的参与记录, 没有时返回nil
func currentParticipation(c *gin.Context, cid int64) *dao.ContestParticipation {
	uid := getUserID(c)
	if uid == 0 {
		return nil
	}
	ud := &dao.UserDao{ID: uid}
	p := dao.GetParticipationByID(ud.GetCurrentContest())
	if p == nil || p.ContestID != cid {
		return nil
	}
	return p
}

//比赛列表, 按时间分为进行中/未开始/已结束, 外加自己正在参加的
func getContests(c *gin.Context) {
	uid := getUserID(c)
	ud := &dao.UserDao{ID: uid}
	var orgs []int64
	isSuperAdmin := false
	if uid != 0 {
		orgs = ud.GetOrganizations()
		isSuperAdmin = ud.IsSuperAdmin()
	}

	now := time.Now()
	present := make([]common.H, 0)
	future := make([]common.H, 0)
	past := make([]common.H, 0)
	var active common.H

	cur := currentParticipationAny(c)
	for _, item := range dao.GetAllContests() {
		if !item.AccessibleBy(uid, orgs, isSuperAdmin) {
			continue
		}
		typ := "public"
		if item.IsPrivate || item.IsOrganizationPrivate {
			typ = "private"
		}
		info := common.H{
			"key":    item.Key,
			"title":  item.Title,
			"begin":  item.Begin.Format(common.TIME_FORMAT),
			"end":    item.End.Format(common.TIME_FORMAT),
			"length": float64(item.Length) / 3600,
			"status": item.Status,
			"format": item.Format,
			"type":   typ,
			"num":    item.UserCount,
		}
		if cur != nil && cur.ContestID == item.ID {
			active = info
		}
		if item.Ended(now) {
			past = append(past, info)
		} else if item.Started(now) {
			present = append(present, info)
		} else {
			future = append(future, info)
		}
	}
	c.Set("active", active)
	c.Set("present", present)
	c.Set("future", future)
	c.Set("past", past)
}

//当前用户正在参加的参与记录, 不限定比赛
func currentParticipationAny(c *gin.Context) *dao.ContestParticipation {
	uid := getUserID(c)
	if uid == 0 {
		return nil
	}
	ud := &dao.UserDao{ID: uid}
	return dao.GetParticipationByID(ud.GetCurrentContest())
}

//比赛详情
func getContestContent(c *gin.Context) {
	cd := loadContest(c)
	if cd == nil {
		return
	}
	if !checkVisibility(c, cd) {
		return
	}
	contest := cd.Contest
	typ := "public"
	if contest.IsPrivate || contest.IsOrganizationPrivate {
		typ = "private"
	}
	info := common.H{
		"key":              contest.Key,
		"title":            contest.Title,
		"begin":            contest.Begin.Format(common.TIME_FORMAT),
		"end":              contest.End.Format(common.TIME_FORMAT),
		"length":           float64(contest.Length) / 3600,
		"desc":             contest.Desc,
		"author":           contest.Author,
		"type":             typ,
		"format":           contest.Format,
		"status":           contest.Status,
		"need_access_code": contest.AccessCode != "",
		"num":              dao.CountLiveParticipations(contest.ID),
		"now":              time.Now().Format(common.TIME_FORMAT),
	}
	if p := currentParticipation(c, contest.ID); p != nil {
		info["joined"] = true
		info["virtual"] = p.Virtual
	}
	c.Set("contest", info)
}

//加入比赛
func joinContest(c *gin.Context) {
	form := new(joinContestValidtor)
	if err := c.ShouldBind(form); err != nil {
		setError(c, 403, err.Error())
		return
	}
	if ok, errInfo := form.isOk(); !ok {
		setError(c, 403, errInfo)
		return
	}
	cd := &dao.ContestDao{Key: form.Key}
	if cd.GetID() == 0 || !dao.Exists(cd) {
		setError(c, 404, "不存在该比赛")
		return
	}
	if err := dao.GetSelfAll(cd); err != nil {
		setError(c, 404, "不存在该比赛")
		return
	}
	if !checkVisibility(c, cd) {
		return
	}

	ud := &dao.UserDao{ID: getUserID(c)}
	p, err := dao.JoinContest(cd, ud, form.AccessCode)
	if err != nil {
		switch err {
		case dao.ErrAlreadyInContest:
			//告诉用户卡在哪场比赛里
			other := dao.GetParticipationByID(ud.GetCurrentContest())
			msg := err.Error()
			if other != nil {
				ocd := &dao.ContestDao{ID: other.ContestID}
				msg = "已经在比赛 " + dao.OneCol(ocd, "title").ToString() + " 中, 请先退出"
			}
			setError(c, 403, msg)
		case dao.ErrAccessDenied:
			//访问码不对只是让前端重新弹框, 不算硬错误
			setError(c, 403, err.Error())
			c.Set("need_access_code", true)
		default:
			setError(c, 403, err.Error())
		}
		return
	}
	c.Set("virtual", p.Virtual)
	c.Set("participation_id", p.ID)
}

//退出比赛
func leaveContest(c *gin.Context) {
	cd := loadContest(c)
	if cd == nil {
		return
	}
	ud := &dao.UserDao{ID: getUserID(c)}
	if err := dao.LeaveContest(cd, ud); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("result", "ok")
}

//取答卷: 列出比赛题目和按本人答卷种子打乱的选项
func getContestTasks(c *gin.Context) {
	cd := loadContest(c)
	if cd == nil {
		return
	}
	contest := cd.Contest
	p := currentParticipation(c, contest.ID)
	if p == nil {
		setError(c, 403, "请先加入比赛")
		return
	}
	if !contest.Started(time.Now()) && !contest.IsEditor(getUserID(c)) {
		setError(c, 403, "比赛还未开始")
		return
	}
	sub, err := dao.GetOrCreateSubmission(p)
	if err != nil {
		setError(c, 500, err.Error())
		return
	}

	//题目顺序也按答卷种子打乱, 每份答卷看到的卷面各不相同
	cps := dao.GetContestProblems(contest.ID)
	order := common.ShuffledOrder(len(cps), sub.ShuffleSeed)
	data := make([]common.H, len(cps))
	for i, idx := range order {
		cp := cps[idx]
		pd := &dao.ProblemDao{ID: cp.ProblemID}
		cols := dao.Cols(pd, "title", "description", "answer_type")
		answerType := cols[2].ToString()
		info := common.H{
			"contest_problem_id": cp.ID,
			"sequence":           cp.Order,
			"points":             cp.Points,
			"title":              cols[0].ToString(),
			"description":        cols[1].ToString(),
			"answer_type":        answerType,
		}
		if answerType == model.ANSWER_TYPE_MC {
			info["choices"] = dao.GetAnswerChoices(cp.ProblemID, dao.ProblemSeed(sub.ShuffleSeed, cp.ProblemID))
		}
		data[i] = info
	}
	c.Set("submission_id", sub.ID)
	c.Set("result", sub.Result)
	c.Set("data", data)
}

//交卷并评判
func submitContestTasks(c *gin.Context) {
	cd := loadContest(c)
	if cd == nil {
		return
	}
	contest := cd.Contest
	p := currentParticipation(c, contest.ID)
	if p == nil {
		setError(c, 403, "请先加入比赛")
		return
	}
	if p.IsSpectate() {
		setError(c, 403, "观战模式不能作答")
		return
	}
	now := time.Now()
	if p.Ended(contest, now) {
		setError(c, 403, "作答时间已过")
		return
	}
	raw := make(map[string]string)
	if err := json.Unmarshal([]byte(c.DefaultPostForm("answers", "{}")), &raw); err != nil {
		setError(c, 403, err.Error())
		return
	}
	answers := make(map[int64]string, len(raw))
	for k, v := range raw {
		answers[common.StrToInt64(k)] = v
	}

	sub, err := dao.GetOrCreateSubmission(p)
	if err != nil {
		setError(c, 500, err.Error())
		return
	}
	if err := dao.SubmitAnswers(contest, p, sub, answers); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("result", sub.Result)
	c.Set("score", p.Score)
	c.Set("cumtime", p.Cumtime)
}

//我的参赛记录
func myParticipations(c *gin.Context) {
	uid := getUserID(c)
	ps := dao.GetUserParticipations(uid)
	data := make([]common.H, len(ps))
	for i, p := range ps {
		ocd := &dao.ContestDao{ID: p.ContestID}
		data[i] = common.H{
			"contest_key":     dao.OneCol(ocd, "key").ToString(),
			"contest_title":   dao.OneCol(ocd, "title").ToString(),
			"virtual":         p.Virtual,
			"real_start":      p.RealStart.Format(common.TIME_FORMAT),
			"score":           p.Score,
			"cumtime":         p.Cumtime,
			"is_disqualified": p.IsDisqualified,
		}
	}
	c.Set("data", data)
}

//排行榜
func getRankList(c *gin.Context) {
	cd := loadContest(c)
	if cd == nil {
		return
	}
	if !checkVisibility(c, cd) {
		return
	}
	contest := cd.Contest
	uid := getUserID(c)
	now := time.Now()

	data := make([]common.H, 0)
	if contest.CanSeeFullScoreboard(uid, IsSuperAdmin(c), now) {
		data = dao.GetAllRankData(contest.ID)
	} else {
		//只能看自己: 单行匿名视图
		own := dao.GetParticipation(contest.ID, uid, model.LIVE)
		if own == nil {
			setError(c, 404, "Not Found")
			return
		}
		cps := dao.GetContestProblems(contest.ID)
		info := dao.MakeRankingProfile(contest, own, cps)
		info["rank"] = "???"
		info["username"] = "???"
		data = append(data, info)
	}

	//正在虚拟重赛的人把自己的实时成绩插到榜首, 名次展示为"-"
	if p := currentParticipation(c, contest.ID); p != nil && p.IsVirtual() {
		cps := dao.GetContestProblems(contest.ID)
		info := dao.MakeRankingProfile(contest, p, cps)
		info["rank"] = "-"
		data = append([]common.H{info}, data...)
	}
	c.Set("data", data)
}
