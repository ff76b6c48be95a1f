package dispatch

import "html/template"

var emailTpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
  <meta charset="UTF-8">
  <title>Nueva Notificación - AgendaPro</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9fafb; }
    .email-container { background: white; border-radius: 8px; padding: 32px; }
    .header { text-align: center; margin-bottom: 32px; padding-bottom: 24px; border-bottom: 2px solid #e5e7eb; }
    .logo { font-size: 24px; font-weight: bold; color: #6366f1; }
    .highlight { background: #f3f4f6; padding: 16px; border-radius: 6px; border-left: 4px solid #6366f1; margin: 16px 0; }
    .candidate-info { background: #fef3c7; padding: 16px; border-radius: 6px; margin: 16px 0; }
    .footer { text-align: center; padding-top: 24px; border-top: 1px solid #e5e7eb; color: #6b7280; font-size: 14px; }
    .button { display: inline-block; background: #6366f1; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; }
  </style>
</head>
<body>
  <div class="email-container">
    <div class="header">
      <div class="logo">AgendaPro</div>
      <div class="title">Nueva Notificación de Candidato</div>
    </div>
    <div class="content">
      <p class="greeting">Hola <strong>{{.RecipientName}}</strong>,</p>
      <div class="highlight"><strong>Resumen:</strong> <span class="message">{{.Message}}</span></div>
      <div class="candidate-info">
        <strong>Candidato:</strong> {{.CandidateName}}<br>
        <strong>Etapa:</strong> {{.StageName}}<br>
        <strong>Puesto:</strong> {{.ProcessTitle}}<br>
        <strong>Movido por:</strong> {{.MovedBy}}
      </div>
      <p>Por favor, revisa el candidato y toma las acciones necesarias para continuar con el proceso de selección.</p>
      <div style="text-align: center;"><a href="{{.AppUrl}}" class="button">Ver en AgendaPro</a></div>
    </div>
    <div class="footer">
      <p>Este email fue enviado automáticamente por el sistema AgendaPro. No responder a este email.</p>
    </div>
  </div>
</body>
</html>`))

type emailData struct {
	RecipientName string
	CandidateName string
	StageName     string
	ProcessTitle  string
	MovedBy       string
	Message       string
	AppUrl        string
}
