package helpers

import "fmt"

// BuildSimpleHTML оборачивает содержимое в общий каркас письма.
func BuildSimpleHTML(title, body string) string {
	return fmt.Sprintf(`
<div style="max-width:520px;margin:0 auto;font-family:Arial,sans-serif;border:1px solid #eee;border-radius:8px;padding:24px;">
  <h2 style="color:#222;margin:0 0 16px 0;">%s</h2>
  %s
  <p style="font-size:12px;color:#999;margin-top:24px;">Fling — маленький блог.</p>
</div>`, title, body)
}

// BuildPasswordResetHTML — письмо со ссылкой на сброс пароля.
func BuildPasswordResetHTML(resetLink string) string {
	body := fmt.Sprintf(`
      <p style="font-size:14px;color:#222;">Чтобы сбросить пароль, перейдите по ссылке:</p>
      <p><a href="%s" style="display:inline-block;padding:12px 24px;background:#2d74da;color:#fff;text-decoration:none;border-radius:6px;font-weight:600;">Сбросить пароль</a></p>
      <p style="font-size:12px;color:#999;margin-top:16px;">Если кнопка не работает — скопируйте ссылку: %s</p>
      <p style="font-size:12px;color:#999;">Если вы не запрашивали сброс, просто проигнорируйте это письмо.</p>
    `, resetLink, resetLink)
	return BuildSimpleHTML("Сброс пароля", body)
}
