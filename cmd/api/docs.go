package main

// @title           Go Chat API
// @version         1.0
// @description     API do chat em tempo real: registro, login por sessão e histórico de mensagens

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
// @description Cookie de sessão definido pelo POST /user-login
