// Package web 内嵌浏览器聊天客户端的静态资源
package web

import "embed"

//go:embed static/*
var Assets embed.FS
