package app

import (
	"HappyEducation/common"
	"HappyEducation/dao"
	"HappyEducation/model"
	"encoding/json"
	"github.com/gin-gonic/gin"
)

func forAdminPage(c *gin.Context) {
	c.Set("result", "ok")
}

//录入时保证单选题有且只有一个正确项
func checkAnswers(answerType string, ans []dao.Answer) (bool, string) {
	if len(ans) == 0 {
		return false, "至少需要一个选项"
	}
	correct := 0
	for _, a := range ans {
		if a.IsCorrect {
			correct++
		}
	}
	if answerType == model.ANSWER_TYPE_MC && correct != 1 {
		return false, "单选题必须有且只有一个正确项"
	}
	if answerType == model.ANSWER_TYPE_FILL && correct == 0 {
		return false, "填空题必须有标准答案"
	}
	return true, ""
}

func newProblem(c *gin.Context) {
	pJson := c.DefaultPostForm("problem", "")
	if pJson == "" {
		setError(c, 403, "参数错误")
		return
	}
	pd := &dao.ProblemDao{Problem: &dao.Problem{}}
	if err := json.Unmarshal([]byte(pJson), pd.Problem); err != nil {
		setError(c, 403, "参数错误")
		return
	}
	ans := make([]dao.Answer, 0)
	if err := json.Unmarshal([]byte(c.DefaultPostForm("answers", "[]")), &ans); err != nil {
		setError(c, 403, "参数错误")
		return
	}
	if ok, errInfo := checkAnswers(pd.Problem.AnswerType, ans); !ok {
		setError(c, 403, errInfo)
		return
	}
	if pd.Problem.AuthorIDs == nil {
		pd.Problem.AuthorIDs = []int64{getUserID(c)}
	}
	if err := pd.Create(); err != nil {
		setError(c, 500, err.Error())
		return
	}
	if err := dao.ReplaceAnswers(pd.GetID(), ans); err != nil {
		setError(c, 500, err.Error())
		return
	}
	c.Set("code", pd.GetCode())
}

func updateProblem(c *gin.Context) {
	update := c.PostForm("update")
	code := c.PostForm("code")
	mp := make(common.H)
	if err := json.Unmarshal([]byte(update), &mp); err != nil || code == "" {
		setError(c, 403, "参数错误")
		return
	}
	pd := &dao.ProblemDao{Code: code}
	if !dao.Exists(pd) {
		setError(c, 403, "不存在该题目")
		return
	}
	if err := pd.Update(mp); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("result", "ok")
}

//整体替换某题的选项
func updateAnswers(c *gin.Context) {
	pd := &dao.ProblemDao{Code: c.PostForm("code")}
	if pd.GetID() == 0 || !dao.Exists(pd) {
		setError(c, 403, "不存在该题目")
		return
	}
	ans := make([]dao.Answer, 0)
	if err := json.Unmarshal([]byte(c.PostForm("answers")), &ans); err != nil {
		setError(c, 403, "参数错误")
		return
	}
	if ok, errInfo := checkAnswers(dao.OneCol(pd, "answer_type").ToString(), ans); !ok {
		setError(c, 403, errInfo)
		return
	}
	if err := dao.ReplaceAnswers(pd.GetID(), ans); err != nil {
		setError(c, 500, err.Error())
		return
	}
	c.Set("result", "ok")
}

func delProblem(c *gin.Context) {
	pd := &dao.ProblemDao{Code: c.DefaultQuery("code", "")}
	if pd.GetID() == 0 {
		setError(c, 403, "参数错误")
		return
	}
	if err := pd.Delete(); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("result", "ok")
}

func newLevel(c *gin.Context) {
	l := &dao.Level{
		Code: c.Query("code"),
		Name: c.Query("name"),
	}
	if l.Code == "" {
		setError(c, 403, "参数错误")
		return
	}
	if err := dao.NewLevel(l); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("id", l.ID)
}

func newContest(c *gin.Context) {
	cd := &dao.ContestDao{
		Contest: &dao.Contest{},
	}
	if err := json.Unmarshal([]byte(c.PostForm("contest")), &cd.Contest); err != nil {
		setError(c, 403, err.Error())
		return
	}
	if cd.Contest.Key == "" {
		setError(c, 403, "比赛必须有key")
		return
	}
	if err := cd.Create(); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("id", cd.GetID())
}

func searchContests(c *gin.Context) {
	l := common.StrToInt64(c.DefaultPostForm("l", "1"))
	r := common.StrToInt64(c.DefaultPostForm("r", "20"))
	mp := make(map[string]interface{})
	if err := json.Unmarshal([]byte(c.DefaultPostForm("rules", "{}")), &mp); err != nil {
		setError(c, 403, err.Error())
		return
	}
	rules := make([]string, 0)
	values := make([]interface{}, 0)
	for k, v := range mp {
		rules = append(rules, k)
		values = append(values, v)
	}
	total, res := dao.SearchContests(l, r, rules, values)
	data := make([]common.H, len(res))
	for idx, item := range res {
		typ := "public"
		if item.IsPrivate || item.IsOrganizationPrivate {
			typ = "private"
		}
		data[idx] = common.H{
			"id":     item.ID,
			"key":    item.Key,
			"begin":  item.Begin.Format(common.TIME_FORMAT),
			"title":  item.Title,
			"length": float64(item.Length) / 3600,
			"status": item.Status,
			"format": item.Format,
			"type":   typ,
			"num":    item.UserCount,
		}
	}
	c.Set("total", total)
	c.Set("data", data)
}

func getContestInfo(c *gin.Context) {
	cd := &dao.ContestDao{ID: common.StrToInt64(c.Query("id"))}
	if x := dao.GetSelfAll(cd); x != nil {
		setError(c, 403, "Not find")
		return
	}
	c.Set("contest", cd.Contest)
}

func updateContest(c *gin.Context) {
	update := c.PostForm("update")
	id := c.PostForm("id")
	mp := make(common.H)
	if err := json.Unmarshal([]byte(update), &mp); err != nil || id == "" {
		setError(c, 403, "参数错误")
		return
	}
	cd := &dao.ContestDao{ID: common.StrToInt64(id)}
	if err := cd.Update(mp); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("result", "ok")
}

//整体替换比赛题目, 传题目code列表和各题分值
func addCproblems(c *gin.Context) {
	id := common.StrToInt64(c.DefaultPostForm("id", "0"))
	codes := make([]string, 0)
	points := make([]uint, 0)
	if err := json.Unmarshal([]byte(c.PostForm("problems")), &codes); err != nil {
		setError(c, 403, err.Error())
		return
	}
	if err := json.Unmarshal([]byte(c.DefaultPostForm("points", "[]")), &points); err != nil {
		setError(c, 403, err.Error())
		return
	}
	if err := dao.DeleteContestProblems(id); err != nil {
		setError(c, 403, err.Error())
		return
	}
	cps := make([]dao.ContestProblem, len(codes))
	for idx, code := range codes {
		pd := &dao.ProblemDao{Code: code}
		if pd.GetID() == 0 {
			setError(c, 403, "不存在题目 "+code)
			return
		}
		pts := uint(100)
		if idx < len(points) {
			pts = points[idx]
		}
		cps[idx] = dao.ContestProblem{
			ProblemID: pd.GetID(),
			ContestID: id,
			Order:     idx,
			Points:    pts,
		}
	}
	if err := dao.AddContestProblems(id, cps); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("result", "ok")
}

func deleteContest(c *gin.Context) {
	id := common.StrToInt64(c.DefaultQuery("id", "0"))
	if id == 0 {
		setError(c, 403, "参数错误")
		return
	}
	cd := &dao.ContestDao{ID: id}
	if err := cd.Delete(); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("result", "ok")
}

//管理端直接看完整榜单
func forRankList(c *gin.Context) {
	cd := &dao.ContestDao{ID: common.StrToInt64(c.DefaultQuery("id", "0"))}
	if !dao.Exists(cd) {
		setError(c, 403, "Not Found")
		return
	}
	c.Set("data", dao.GetAllRankData(cd.ID))
}

//查看某场比赛的答卷
func forCsubmissions(c *gin.Context) {
	cid := common.StrToInt64(c.DefaultPostForm("id", "0"))
	l := common.StrToInt64(c.DefaultPostForm("l", "1"))
	r := common.StrToInt64(c.DefaultPostForm("r", "50"))
	rules := []string{"contest_id"}
	values := []interface{}{cid}
	total, subs := dao.SearchSubmissions(l, r, rules, values)
	data := make([]common.H, len(subs))
	for i, item := range subs {
		ud := &dao.UserDao{ID: item.UserID}
		data[i] = common.H{
			"id":         item.ID,
			"author":     ud.GetName(),
			"result":     item.Result,
			"time":       item.Time.Format(common.TIME_FORMAT),
			"created_at": item.CreatedAt.Format(common.TIME_FORMAT),
		}
	}
	c.Set("total", total)
	c.Set("data", data)
}

//取消/恢复参赛资格
func disqualify(c *gin.Context) {
	pid := common.StrToInt64(c.DefaultQuery("participation_id", "0"))
	flag := common.StrToBool(c.DefaultQuery("flag", "true"))
	p := dao.GetParticipationByID(pid)
	if p == nil {
		setError(c, 403, "不存在该参与记录")
		return
	}
	if err := dao.DisqualifyParticipation(p, flag); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("result", "ok")
}

func getUsers(c *gin.Context) {
	username := c.DefaultQuery("username", "")
	wants := []string{"id", "username", "created_at", "school", "email", "is_admin", "is_super_admin"}

	if username != "" {
		ud := &dao.UserDao{Username: username}
		if !dao.Exists(ud) {
			c.Set("total", 0)
			c.Set("data", []common.H{})
			return
		}
		cols := dao.Cols(ud, wants...)
		status := "普通用户"
		if cols[6].ToBool() {
			status = "超级管理员"
		} else if cols[5].ToBool() {
			status = "管理员"
		}
		c.Set("data", []common.H{common.H{
			"id":         cols[0].ToInt64(),
			"username":   cols[1].ToString(),
			"created_at": cols[2].ToTime(),
			"school":     cols[3].ToString(),
			"email":      cols[4].ToString(),
			"status":     status,
		}})
		c.Set("total", 1)
		return
	}
	l := common.StrToInt64(c.DefaultQuery("l", "1"))
	r := common.StrToInt64(c.DefaultQuery("r", "50"))
	total, users := dao.SearchUsers(l, r, nil, nil)
	data := make([]common.H, len(users))
	for i, item := range users {
		status := "普通用户"
		if item.IsSuperAdmin {
			status = "超级管理员"
		} else if item.IsAdmin {
			status = "管理员"
		}
		data[i] = common.H{
			"id":         item.ID,
			"username":   item.Username,
			"created_at": item.CreatedAt.Format(common.TIME_FORMAT),
			"school":     item.School,
			"email":      item.Email,
			"status":     status,
		}
	}
	c.Set("data", data)
	c.Set("total", total)
}

func getPrivileges(c *gin.Context) {
	ud := &dao.UserDao{ID: common.StrToInt64(c.DefaultQuery("id", "0"))}
	if !dao.Exists(ud) {
		setError(c, 403, "参数错误")
		return
	}
	pri := dao.OneCol(ud, "privilege").ToUint64()
	hadPris := make([]uint64, 0)

	d := uint64(len(PrivilegeDesc))
	priList := make([]uint64, d)
	for i := uint64(0); i < d; i++ {
		if (pri & (1 << i)) > 0 {
			hadPris = append(hadPris, 1<<i)
		}
		priList[i] = 1 << i
	}
	c.Set("pri_value_list", priList)
	c.Set("pri_desc_list", PrivilegeDesc)
	c.Set("had_pri_list", hadPris)
}

func updatePrivileges(c *gin.Context) {
	ud := &dao.UserDao{ID: common.StrToInt64(c.DefaultPostForm("id", "0"))}
	if !dao.Exists(ud) {
		setError(c, 403, "参数错误")
		return
	}
	if ud.IsSuperAdmin() {
		setError(c, 403, "超级管理员拥有完全的权限,无需设置")
		return
	}
	privileges := make([]uint64, 0)
	if err := json.Unmarshal([]byte(c.PostForm("privileges")), &privileges); err != nil {
		setError(c, 403, "参数错误")
		return
	}
	pri := uint64(0)
	for _, item := range privileges {
		pri |= item
	}
	mp := common.H{"privilege": pri}
	status := "管理员"
	if pri == 0 {
		status = "普通用户"
	} else {
		mp["is_admin"] = true
	}
	if err := dao.UpdateCols(ud, mp); err != nil {
		setError(c, 403, "操作失败")
		return
	}
	c.Set("status", status)
}

func newOrganization(c *gin.Context) {
	name := c.DefaultQuery("name", "")
	if name == "" {
		setError(c, 403, "参数错误")
		return
	}
	od := &dao.OrganizationDao{
		Organization: &dao.Organization{
			Name: name,
			Desc: c.DefaultQuery("desc", ""),
		},
	}
	if err := od.Create(); err != nil {
		setError(c, 403, "创建失败")
		return
	}
	c.Set("id", od.GetID())
}

func addOrganizationUser(c *gin.Context) {
	oid := common.StrToInt64(c.DefaultQuery("organization_id", "0"))
	ud := &dao.UserDao{Username: c.Query("username")}
	if oid == 0 || ud.GetID() == 0 {
		setError(c, 403, "参数错误")
		return
	}
	if err := dao.AddUserToOrganization(ud.GetID(), oid); err != nil {
		setError(c, 403, err.Error())
		return
	}
	c.Set("result", "ok")
}
