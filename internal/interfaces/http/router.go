package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Mercadeo-api/internal/application/usecase"
	"github.com/jhoicas/Mercadeo-api/internal/application/webhook"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ContactUC     *usecase.ContactUseCase
	WorkflowUC    *usecase.WorkflowUseCase
	KeywordUC     *usecase.KeywordUseCase
	GroupUC       *usecase.GroupUseCase
	PhoneNumberUC *usecase.PhoneNumberUseCase
	CampaignUC    *usecase.CampaignUseCase
	SuppressionUC *usecase.SuppressionUseCase
	LandingUC     *usecase.LandingUseCase
	AutomationUC  *usecase.AutomationUseCase
	WebhookSvc    *webhook.Service
	JWTSecret     string
	WebhookSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Landing pública (sin token)
	landingHandler := NewLandingHandler(deps.LandingUC)
	api.Get("/landing", landingHandler.PublicContent)

	// Webhooks del proveedor (firmados, sin token)
	webhooks := api.Group("/webhooks")
	webhookHandler := NewWebhookHandler(deps.WebhookSvc, deps.WebhookSecret)
	webhooks.Post("/inbound", webhookHandler.Inbound)
	webhooks.Post("/status", webhookHandler.DeliveryStatus)
	webhooks.Post("/optout", webhookHandler.OptOut)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Contacts (protegido)
	contacts := protected.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/", contactHandler.List)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)

	// Workflows (protegido)
	workflows := protected.Group("/workflows")
	workflowHandler := NewWorkflowHandler(deps.WorkflowUC)
	workflows.Post("/", workflowHandler.Create)
	workflows.Get("/", workflowHandler.List)
	workflows.Get("/:id", workflowHandler.GetByID)
	workflows.Put("/:id", workflowHandler.Update)
	workflows.Delete("/:id", workflowHandler.Delete)

	// Keywords (protegido)
	keywords := protected.Group("/keywords")
	keywordHandler := NewKeywordHandler(deps.KeywordUC)
	keywords.Post("/", keywordHandler.Create)
	keywords.Get("/", keywordHandler.List)
	keywords.Get("/:id", keywordHandler.GetByID)
	keywords.Put("/:id", keywordHandler.Update)
	keywords.Delete("/:id", keywordHandler.Delete)
	keywords.Get("/:id/activity", keywordHandler.ListActivity)

	// Groups (protegido)
	groups := protected.Group("/groups")
	groupHandler := NewGroupHandler(deps.GroupUC)
	groups.Post("/", groupHandler.Create)
	groups.Get("/", groupHandler.List)
	groups.Get("/:id", groupHandler.GetByID)
	groups.Put("/:id", groupHandler.Update)
	groups.Delete("/:id", groupHandler.Delete)
	groups.Post("/:id/members", groupHandler.AddMember)
	groups.Get("/:id/members", groupHandler.ListMembers)

	// Números del pool (protegido; aprovisionar es solo admin)
	numbers := protected.Group("/numbers")
	phoneNumberHandler := NewPhoneNumberHandler(deps.PhoneNumberUC)
	numbers.Post("/", RequireRole("admin"), phoneNumberHandler.Provision)
	numbers.Get("/", phoneNumberHandler.ListMine)
	numbers.Get("/available", phoneNumberHandler.ListAvailable)
	numbers.Post("/:id/assign", phoneNumberHandler.Assign)
	numbers.Post("/:id/release", phoneNumberHandler.Release)

	// Campaigns (protegido)
	campaigns := protected.Group("/campaigns")
	campaignHandler := NewCampaignHandler(deps.CampaignUC)
	campaigns.Post("/", campaignHandler.Create)
	campaigns.Get("/", campaignHandler.List)
	campaigns.Get("/:id", campaignHandler.GetByID)
	campaigns.Delete("/:id", campaignHandler.Delete)
	campaigns.Post("/:id/send", campaignHandler.Send)
	campaigns.Get("/:id/messages", campaignHandler.ListMessages)

	// Suppressions (protegido)
	suppressions := protected.Group("/suppressions")
	suppressionHandler := NewSuppressionHandler(deps.SuppressionUC)
	suppressions.Post("/", suppressionHandler.Create)
	suppressions.Get("/", suppressionHandler.List)
	suppressions.Delete("/:id", suppressionHandler.Delete)

	// Automation (protegido)
	automation := protected.Group("/automation")
	automationHandler := NewAutomationHandler(deps.AutomationUC)
	automation.Post("/events", automationHandler.TriggerCustomEvent)

	// CMS de la landing (protegido, solo admin)
	admin := protected.Group("/admin", RequireRole("admin"))
	admin.Post("/testimonials", landingHandler.CreateTestimonial)
	admin.Get("/testimonials", landingHandler.ListTestimonials)
	admin.Put("/testimonials/:id", landingHandler.UpdateTestimonial)
	admin.Delete("/testimonials/:id", landingHandler.DeleteTestimonial)
	admin.Put("/stats", landingHandler.UpsertStat)
	admin.Get("/footer", landingHandler.GetFooter)
	admin.Put("/footer", landingHandler.UpdateFooter)
	admin.Post("/automation/inactivity-sweep", automationHandler.RunInactivitySweep)
}
