// Package docs 注册 Swagger 文档,由 gin-swagger 在 /swagger/*any 下提供
// 接口注释在 internal/interface/http/handler,修改后用 swag init 重新生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/items": {
            "get": {"tags": ["库存"], "summary": "查询库存", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "title", "in": "query"},
                    {"type": "string", "name": "author", "in": "query"},
                    {"type": "string", "name": "id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["库存"], "summary": "入库", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "参数错误"}, "409": {"description": "ID已存在"}}}
        },
        "/api/v1/items/{id}": {
            "get": {"tags": ["库存"], "summary": "商品详情",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "商品不存在"}}},
            "head": {"tags": ["库存"], "summary": "商品是否存在",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "存在"}, "404": {"description": "不存在"}}},
            "delete": {"tags": ["库存"], "summary": "下架",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/items/{id}/purchase": {
            "post": {"tags": ["库存"], "summary": "直接购买",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "商品不存在"}, "409": {"description": "已售罄"}, "422": {"description": "库存不足"}}}
        },
        "/api/v1/inventory/value": {
            "get": {"tags": ["库存"], "summary": "库存总价值", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/discounts/{id}": {
            "get": {"tags": ["折扣"], "summary": "查询折扣",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "商品不存在"}}},
            "put": {"tags": ["折扣"], "summary": "设置折扣",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "百分比超出范围"}, "404": {"description": "商品不存在"}}}
        },
        "/api/v1/discounts/promotion": {
            "post": {"tags": ["折扣"], "summary": "批量设置折扣",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/discounts/basket": {
            "post": {"tags": ["折扣"], "summary": "购物车试算",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/orders": {
            "get": {"tags": ["订单"], "summary": "订单列表",
                "parameters": [
                    {"type": "string", "name": "customer", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "参数错误"}}},
            "post": {"tags": ["订单"], "summary": "下单",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "404": {"description": "商品不存在"}, "409": {"description": "已售罄"}, "422": {"description": "库存不足"}}}
        },
        "/api/v1/orders/{id}": {
            "get": {"tags": ["订单"], "summary": "订单详情",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "订单不存在"}}}
        },
        "/api/v1/orders/{id}/status": {
            "patch": {"tags": ["订单"], "summary": "修改订单状态",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "状态非法"}, "404": {"description": "订单不存在"}}}
        }
    }
}`

// SwaggerInfo 运行时可修改 Host/BasePath
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bookstore Ledger API",
	Description:      "内存书店: 库存、折扣、订单",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
