package app

import (
	"fmt"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"net/http"
)

//路由
func InitRouters() {

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.LoadHTMLFiles("./dist/spa/index.html")
	r.StaticFS("/statics", http.Dir("./dist/spa/statics"))
	r.StaticFS("/js", http.Dir("./dist/spa/js"))
	r.StaticFS("/css", http.Dir("./dist/spa/css"))
	r.StaticFS("/fonts", http.Dir("./dist/spa/fonts"))
	r.StaticFS("/img", http.Dir("./dist/spa/img"))

	r.GET("/", func(c *gin.Context) {
		c.HTML(200, "index.html", nil)
	})

	store := cookie.NewStore([]byte("secret")) //启用cookie和session
	store.Options(sessions.Options{
		MaxAge: int(SESSION_EXPIRE), //3天的过期时间
	})

	r.Use(jsonResponse)
	r.Use(sessions.Sessions("ginSession", store))

	initUserRouters(r)
	initAdminRouters(r)
	if err := r.Run(":9999"); err != nil {
		fmt.Println("路由初始化错误\n", err.Error())
	}
}

//用户基础的路由
func initUserRouters(r *gin.Engine) {
	g0 := r.Group("/api") // 无需任何条件的请求
	{
		g0.GET("ping", ping)
		g0.POST("login", login)
		g0.POST("register", register)
		g0.GET("autologin", autologin)
		g0.GET("getUserInfo", getUserInfo)
		g0.GET("searchUsers", searchUsers)
		g0.GET("showAvatars", showAvatars)

		//problem
		g0.GET("getLevels", getLevels)
		g0.GET("getProblemset", getProblemset)
		g0.GET("getOneProblem", getOneProblem)

		//contest
		g0.GET("getContests", getContests)
		g0.GET("getContestContent", getContestContent)
		g0.GET("getRankList", getRankList)
	}

	g1 := r.Group("/api") //需要登陆才能进行的请求
	g1.Use(AuthLogin)     //authLogin 登陆验证中间件
	{
		g1.GET("logout", logout)
		g1.POST("update", update)
		g1.GET("changeAvatar", changeAvatar)

		//problem
		g1.POST("checkPracticeAnswer", checkPracticeAnswer)

		//contest
		g1.GET("myParticipations", myParticipations)
		g1.POST("joinContest", joinContest)
		g1.GET("leaveContest", leaveContest)
		g1.GET("getContestTasks", getContestTasks)
		g1.POST("submitContestTasks", submitContestTasks)
	}
}

func initAdminRouters(R *gin.Engine) {
	r := R.Group("/api")
	r.POST("newProblem", __CreateProblem, newProblem)
	r.POST("updateProblem", __UpdateProblem, updateProblem)
	r.POST("updateAnswers", __UpdateProblem, updateAnswers)
	r.GET("delProblem", __DeleteProblem, delProblem)
	r.GET("newLevel", __CreateProblem, newLevel)
	r.POST("newContest", __CreateContest, newContest)
	r.POST("updateContest", __UpdateContest, updateContest)
	r.POST("addCproblems", __UpdateContest, addCproblems)
	r.GET("deleteContest", __DeleteContest, deleteContest)
	r.POST("forCsubmissions", __ScanContestSubmission, forCsubmissions)
	r.GET("disqualify", __DisqualifyUser, disqualify)
	r.GET("getUsers", __ScanUserInfo, getUsers)
	r.POST("updatePrivileges", __SetUserPrivilege, updatePrivileges)
	r.GET("newOrganization", __ManageOrganization, newOrganization)
	r.GET("addOrganizationUser", __ManageOrganization, addOrganizationUser)

	g := r.Group("", AuthAdmin)
	{
		g.GET("forAdminPage", forAdminPage)
		g.POST("searchContests", searchContests)
		g.GET("getContestInfo", getContestInfo)
		g.GET("forRankList", forRankList)
		g.GET("getPrivileges", getPrivileges)
	}
}
